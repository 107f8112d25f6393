// Package types defines the toy shop entities, the Slot storage interface,
// backend configuration, and the standard error values shared by the store,
// the slot backends, and the CLI.
//
// Entities carry their identity from construction (NewToy, NewCustomer,
// NewOrder). Stores never assign or rewrite identity.
package types
