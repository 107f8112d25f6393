package types

import "github.com/shopspring/decimal"

// Toy is an inventory item. Orders refer to toys by name only.
type Toy struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
}

// NewToy returns a toy with a freshly generated ID.
func NewToy(name, category string, price decimal.Decimal, quantity int, description string) Toy {
	return Toy{
		ID:          NewID(),
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		Description: description,
	}
}

// EntityID implements Entity.
func (t Toy) EntityID() string { return t.ID }

// Validate checks the required fields.
func (t Toy) Validate() error {
	if t.ID == "" {
		return ErrInvalidID
	}
	if t.Name == "" {
		return ErrInvalidName
	}
	return nil
}
