package store

// Op names the kind of mutation behind a Change.
type Op string

// Mutation kinds.
const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one completed mutation. Items is a snapshot of the whole
// collection after the mutation; subscribers may keep it.
type Change[T any] struct {
	Op    Op
	IDs   []string
	Items []T
}

// subscriber is a registered callback. The token identifies it for removal.
type subscriber[T any] struct {
	token int
	fn    func(Change[T])
}
