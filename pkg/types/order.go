package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitPrice is the flat per-item price charged on every order, regardless of
// the toy's own listed price.
var UnitPrice = decimal.NewFromInt(100)

// OrderStatus tracks fulfilment.
type OrderStatus string

// Order statuses.
const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
)

// PaymentStatus tracks payment.
type PaymentStatus string

// Payment statuses.
const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

// ParseOrderStatus returns the status named by s.
// Returns ErrInvalidStatus if s is not a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusCompleted:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// MarshalText rejects unknown statuses so one is never written to a slot
// that could not be read back.
func (s OrderStatus) MarshalText() ([]byte, error) {
	if _, err := ParseOrderStatus(string(s)); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText rejects unknown statuses so a slot holding one fails to decode.
func (s *OrderStatus) UnmarshalText(text []byte) error {
	st, err := ParseOrderStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParsePaymentStatus returns the payment status named by s.
// Returns ErrInvalidPaymentStatus if s is not a known status.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentUnpaid, PaymentPaid:
		return ps, nil
	}
	return "", ErrInvalidPaymentStatus
}

// MarshalText rejects unknown payment statuses.
func (p PaymentStatus) MarshalText() ([]byte, error) {
	if _, err := ParsePaymentStatus(string(p)); err != nil {
		return nil, err
	}
	return []byte(p), nil
}

// UnmarshalText rejects unknown payment statuses.
func (p *PaymentStatus) UnmarshalText(text []byte) error {
	ps, err := ParsePaymentStatus(string(text))
	if err != nil {
		return err
	}
	*p = ps
	return nil
}

// Order records a sale. ToyName and CustomerName are copies of the names at
// the time of entry, not references; renaming or deleting the toy or customer
// leaves the order untouched.
type Order struct {
	ID            string          `json:"id"`
	ToyName       string          `json:"toyName"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CustomerName  string          `json:"customerName"`
	OrderDate     time.Time       `json:"orderDate"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
}

// NewOrder returns a pending, unpaid order dated now with a freshly generated
// ID and TotalPrice computed from UnitPrice.
func NewOrder(toyName, customerName string, quantity int, now time.Time) Order {
	return Order{
		ID:            NewID(),
		ToyName:       toyName,
		Quantity:      quantity,
		TotalPrice:    OrderTotal(quantity),
		CustomerName:  customerName,
		OrderDate:     now,
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
	}
}

// OrderTotal returns quantity × UnitPrice.
func OrderTotal(quantity int) decimal.Decimal {
	return UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// EntityID implements Entity.
func (o Order) EntityID() string { return o.ID }

// SetQuantity changes the quantity and recomputes TotalPrice.
func (o *Order) SetQuantity(quantity int) {
	o.Quantity = quantity
	o.TotalPrice = OrderTotal(quantity)
}

// SetStatus sets the fulfilment status.
// Returns ErrInvalidStatus if the status is not recognized.
func (o *Order) SetStatus(s OrderStatus) error {
	if _, err := ParseOrderStatus(string(s)); err != nil {
		return err
	}
	o.Status = s
	return nil
}

// SetPaymentStatus sets the payment status.
// Returns ErrInvalidPaymentStatus if the status is not recognized.
func (o *Order) SetPaymentStatus(p PaymentStatus) error {
	if _, err := ParsePaymentStatus(string(p)); err != nil {
		return err
	}
	o.PaymentStatus = p
	return nil
}

// Validate checks the required fields. Names are not checked against the
// toy or customer collections.
func (o Order) Validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.ToyName == "" {
		return ErrInvalidToyName
	}
	if o.CustomerName == "" {
		return ErrInvalidCustomerName
	}
	return nil
}
