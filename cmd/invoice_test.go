package cmd

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

func TestParseItemSpec(t *testing.T) {
	tests := []struct {
		spec            string
		desc, qty, rate string
		wantErr         bool
	}{
		{spec: "Design work:2:100.005", desc: "Design work", qty: "2", rate: "100.005"},
		{spec: "Ratio 1:2 study:1:50", desc: "Ratio 1:2 study", qty: "1", rate: "50"},
		{spec: "Consulting:3:", desc: "Consulting", qty: "3", rate: ""},
		{spec: " Hosting : 12 : 15 ", desc: "Hosting", qty: "12", rate: "15"},
		{spec: "Setup:200", wantErr: true},
		{spec: "Setup", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			desc, qty, rate, err := parseItemSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.desc, desc)
			assert.Equal(t, tt.qty, qty)
			assert.Equal(t, tt.rate, rate)
		})
	}
}

func newDraftCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "new"}
	c.Flags().String("tax", "", "")
	c.Flags().String("discount", "", "")
	c.Flags().String("notes", "", "")
	c.Flags().String("date", "", "")
	c.Flags().String("due", "", "")
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestFillDraft(t *testing.T) {
	d := invoice.NewDraft(decimal.NewFromInt(18))
	d.AddItem()

	c := newDraftCommand(t, "--discount", "10")
	require.NoError(t, fillDraft(c, d, []string{"Design:2:100.005", "Hosting:1:50"}))

	require.Len(t, d.LineItems, 2)
	assert.Equal(t, "Design", d.LineItems[0].Description)
	assert.True(t, d.LineItems[0].Amount.Equal(decimal.RequireFromString("200.01")))
	assert.True(t, d.Subtotal.Equal(decimal.RequireFromString("250.01")))
	assert.True(t, d.TaxRate.Equal(decimal.NewFromInt(18)), "tax rate kept when --tax is not given")
	assert.True(t, d.DiscountAmount.Equal(decimal.NewFromInt(10)))
}

func TestApplyMetadata(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	base := invoice.DefaultMetadata(now, models.DefaultSettings().Invoice)

	t.Run("date keeps payment terms", func(t *testing.T) {
		meta := base
		require.NoError(t, applyMetadata(newDraftCommand(t, "--date", "2024-04-01", "--notes", "Thanks"), &meta))
		assert.Equal(t, civil.Date{Year: 2024, Month: 4, Day: 1}, meta.Date)
		assert.Equal(t, civil.Date{Year: 2024, Month: 5, Day: 1}, meta.DueDate)
		assert.Equal(t, "Thanks", meta.Notes)
	})

	t.Run("explicit due date wins", func(t *testing.T) {
		meta := base
		require.NoError(t, applyMetadata(newDraftCommand(t, "--date", "2024-04-01", "--due", "2024-04-15"), &meta))
		assert.Equal(t, civil.Date{Year: 2024, Month: 4, Day: 15}, meta.DueDate)
	})

	t.Run("bad date", func(t *testing.T) {
		meta := base
		assert.Error(t, applyMetadata(newDraftCommand(t, "--due", "15/04/2024"), &meta))
	})
}
