package types

import "encoding/json"

// Customer is a shop customer. OrderHistory exists in the stored format but
// nothing populates it; orders name their customer as free text instead.
type Customer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ContactInfo  string  `json:"contactInfo"`
	Address      string  `json:"address"`
	OrderHistory []Order `json:"orderHistory"`
}

// NewCustomer returns a customer with a freshly generated ID and an empty
// order history.
func NewCustomer(name, contactInfo, address string) Customer {
	return Customer{
		ID:           NewID(),
		Name:         name,
		ContactInfo:  contactInfo,
		Address:      address,
		OrderHistory: []Order{},
	}
}

// MarshalJSON writes a nil OrderHistory as an empty array.
func (c Customer) MarshalJSON() ([]byte, error) {
	type plain Customer
	if c.OrderHistory == nil {
		c.OrderHistory = []Order{}
	}
	return json.Marshal(plain(c))
}

// EntityID implements Entity.
func (c Customer) EntityID() string { return c.ID }

// Validate checks the required fields.
func (c Customer) Validate() error {
	if c.ID == "" {
		return ErrInvalidID
	}
	if c.Name == "" {
		return ErrInvalidName
	}
	return nil
}
