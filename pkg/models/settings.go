package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"invoicer/pkg/money"
)

// Settings groups everything the business configures once.
type Settings struct {
	Profile Profile         `json:"profile"`
	Payment Payment         `json:"payment"`
	Invoice InvoiceSettings `json:"invoice"`
	App     AppSettings     `json:"app"`
}

// Profile is the issuing business as printed on invoices.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GST     string `json:"gst"`
}

// Payment holds the details printed in the payment block.
type Payment struct {
	UPI     string `json:"upi"` // UPI virtual payment address
	Bank    string `json:"bank"`
	Account string `json:"account"`
	IFSC    string `json:"ifsc"`
}

// InvoiceSettings drives numbering and new-draft defaults.
type InvoiceSettings struct {
	Currency     string          `json:"currency"`     // Symbol prepended to amounts
	TaxRate      decimal.Decimal `json:"taxRate"`      // Default percentage for new drafts
	Prefix       string          `json:"prefix"`       // Invoice number prefix
	PaymentTerms int             `json:"paymentTerms"` // Days until due
	NextNumber   int64           `json:"nextNumber"`   // Never reused
}

// AppSettings holds presentation preferences that are only carried through.
type AppSettings struct {
	DarkMode bool `json:"darkMode"`
}

// DefaultSettings returns the settings used when nothing has been stored yet.
func DefaultSettings() Settings {
	return Settings{
		Invoice: InvoiceSettings{
			Currency:     "₹",
			TaxRate:      decimal.NewFromInt(18),
			Prefix:       "INV-",
			PaymentTerms: 30,
			NextNumber:   1,
		},
	}
}

// UnmarshalJSON decodes over the receiver's current values, so fields that
// are absent keep their defaults. Malformed numbers become zero.
func (s *InvoiceSettings) UnmarshalJSON(data []byte) error {
	type alias InvoiceSettings
	aux := struct {
		*alias
		TaxRate      json.RawMessage `json:"taxRate"`
		PaymentTerms json.RawMessage `json:"paymentTerms"`
		NextNumber   json.RawMessage `json:"nextNumber"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.TaxRate) > 0 {
		s.TaxRate = money.FromJSON(aux.TaxRate)
	}
	if len(aux.PaymentTerms) > 0 {
		s.PaymentTerms = int(money.FromJSON(aux.PaymentTerms).IntPart())
	}
	if len(aux.NextNumber) > 0 {
		s.NextNumber = money.FromJSON(aux.NextNumber).IntPart()
	}
	return nil
}
