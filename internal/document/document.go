// Package document projects a committed invoice, its client and the business
// settings into a renderer-agnostic document model.
//
// The projector decides which blocks and fields appear and formats every
// value. Renderers only lay the result out.
package document

// Layout selects between the two document structures.
type Layout string

const (
	// LayoutCompact stacks everything in one narrow column, suited to phones.
	LayoutCompact Layout = "compact"
	// LayoutFull is the page layout with an item table.
	LayoutFull Layout = "full"
)

// FieldKey identifies a contact field so renderers can decorate it.
type FieldKey string

const (
	KeyPhone   FieldKey = "phone"
	KeyEmail   FieldKey = "email"
	KeyAddress FieldKey = "address"
	KeyGST     FieldKey = "gst"
)

// Field is one labelled line. Label may be empty.
type Field struct {
	Key   FieldKey
	Label string
	Value string
}

// Party is the issuer or recipient block.
type Party struct {
	Heading string
	Name    string
	Fields  []Field
}

// Header carries the document identity.
type Header struct {
	Title        string
	NumberLabel  string
	Number       string
	DateLabel    string
	Date         string
	DueDateLabel string
	DueDate      string
}

// Row is one formatted line item.
type Row struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// TotalKind tags a line of the totals block.
type TotalKind string

const (
	TotalSubtotal TotalKind = "subtotal"
	TotalTax      TotalKind = "tax"
	TotalDiscount TotalKind = "discount"
	TotalDue      TotalKind = "total"
)

// TotalLine is one line of the totals block.
type TotalLine struct {
	Kind  TotalKind
	Label string
	Value string
}

// UPI describes the UPI payment option. URI is empty when nothing is owed,
// in which case no QR code should be drawn.
type UPI struct {
	ID      string
	Caption string
	URI     string
}

// Payment is the optional payment block.
type Payment struct {
	Heading string
	Bank    []Field // Nil when no bank name is set
	UPI     *UPI
}

// Document is the projected invoice. Optional blocks are nil or empty when
// they should not be rendered.
type Document struct {
	Layout    Layout
	Header    Header
	Issuer    Party
	Recipient Party
	Columns   []string // Item table headings, full layout only
	Rows      []Row
	Totals    []TotalLine
	Notes     string
	Payment   *Payment
	Footer    []string
}

// HasItemTable reports whether rows should be drawn as a table.
func (d *Document) HasItemTable() bool {
	return len(d.Columns) > 0
}
