package types

import "errors"

// Entity validation errors. Stores never return these; they are for the
// presentation layer's input gating.
var (
	ErrInvalidName          = errors.New("name must not be empty")
	ErrInvalidToyName       = errors.New("toy name must not be empty")
	ErrInvalidCustomerName  = errors.New("customer name must not be empty")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Lookup errors.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrPositionInvalid = errors.New("position out of range")
)

// Slot errors.
var (
	ErrSlotEmpty  = errors.New("slot is empty")
	ErrSlotClosed = errors.New("slot is closed")
)
