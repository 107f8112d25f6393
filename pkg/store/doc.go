// Package store holds the authoritative in-memory collection for one entity
// kind and keeps a durable copy of it in a types.Slot.
//
// A Store loads its collection once, at construction. Every mutation
// (Add, Update, Delete, DeleteID, DeleteAt) rewrites the whole collection to
// the slot and then synchronously notifies subscribers. Persistence failures
// never reach the caller; the in-memory collection stays authoritative and the
// failure is logged and kept for Err.
package store
