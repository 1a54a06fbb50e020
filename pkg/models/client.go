package models

import (
	"encoding/json"
	"time"
)

// Client is a customer that invoices are billed to. Invoices refer to clients
// by ID only, so removing a client never removes its invoices.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	GST       string    `json:"gst"` // Tax registration number
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON decodes a stored client, tolerating a malformed timestamp.
func (c *Client) UnmarshalJSON(data []byte) error {
	type alias Client
	aux := struct {
		*alias
		CreatedAt json.RawMessage `json:"createdAt"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.CreatedAt = parseTimestamp(aux.CreatedAt)
	return nil
}
