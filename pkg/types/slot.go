package types

// Slot is the durable key-value storage behind the stores. Each entity kind
// owns exactly one value, the serialized form of its whole collection. Values
// are read whole and written whole.
type Slot interface {
	// Load returns the value stored for kind.
	// Returns ErrSlotEmpty if nothing has been saved for that kind.
	Load(kind string) ([]byte, error)

	// Save replaces the value stored for kind.
	Save(kind string, data []byte) error

	// Close releases backend resources. Idempotent.
	Close() error
}
