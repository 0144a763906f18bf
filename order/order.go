// Package order defines the delivery order model and its status machine.
package order

import (
	"time"

	"pizzadash/geo"
)

// Status is the lifecycle position of an order. Transitions are linear:
// incoming -> active -> past. Incoming orders may also be removed outright
// (decline or expiry), which is a deletion, not a transition.
type Status int

const (
	StatusIncoming Status = iota
	StatusActive
	StatusPast
)

func (s Status) String() string {
	switch s {
	case StatusIncoming:
		return "incoming"
	case StatusActive:
		return "active"
	case StatusPast:
		return "past"
	default:
		return "unknown"
	}
}

// MarshalText serializes the status as its lifecycle name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a lifecycle name back into a Status
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "incoming":
		*s = StatusIncoming
	case "active":
		*s = StatusActive
	case "past":
		*s = StatusPast
	default:
		return &UnknownStatusError{Value: string(text)}
	}
	return nil
}

// UnknownStatusError reports an unrecognized status string in a save file
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return "unknown order status " + e.Value
}

// Item is a single order line: a dish name and a quantity of at least 1
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order is one delivery transaction.
//
// Monetary fields (Total, DeliveryFee, Tip) are fixed at creation and never
// mutated afterwards. Only Status, PizzaMade, NearCustomer, StartLocation,
// and Distance change post-creation, and Distance is always recomputed from
// StartLocation/CustomerLocation rather than edited directly.
type Order struct {
	ID             string `json:"id"`
	CustomerName   string `json:"customerName"`
	CustomerAvatar string `json:"customerAvatar"`
	Items          []Item `json:"items"`

	Total       int `json:"total"`
	DeliveryFee int `json:"deliveryFee"`
	Tip         int `json:"tip"`

	CreatedAt        time.Time  `json:"date"`
	CustomerLocation geo.Point  `json:"customerLocation"`
	StartLocation    *geo.Point `json:"startLocation,omitempty"`
	Distance         float64    `json:"distance"` // meters, derived

	PizzaMade    bool   `json:"pizzaMade"`
	NearCustomer bool   `json:"isNearCustomer"`
	Status       Status `json:"status"`
}

// Clone returns a deep copy so callers can hold order data outside the
// engine lock without aliasing engine-owned state.
func (o *Order) Clone() *Order {
	c := *o
	if o.StartLocation != nil {
		loc := *o.StartLocation
		c.StartLocation = &loc
	}
	c.Items = make([]Item, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}
