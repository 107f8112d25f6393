package types

import "github.com/google/uuid"

// Entity kinds double as the durable slot keys.
const (
	KindToys      = "toys"
	KindCustomers = "customers"
	KindOrders    = "orders"
)

// Kinds lists every entity kind in the order the shop opens them.
var Kinds = []string{
	KindToys,
	KindCustomers,
	KindOrders,
}

// Entity is anything a store can hold. The identity is assigned once by the
// entity's constructor and never changes.
type Entity interface {
	EntityID() string
}

// NewID generates a UUID v7 for a new entity.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
