package models

// Snapshot is the complete data set. It is always loaded and saved whole.
type Snapshot struct {
	Invoices []Invoice `json:"invoices"`
	Clients  []Client  `json:"clients"`
	Settings Settings  `json:"settings"`
}

// NewSnapshot returns the empty default state.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Invoices: []Invoice{},
		Clients:  []Client{},
		Settings: DefaultSettings(),
	}
}
