package orderbook

import (
	"time"

	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/shopspring/decimal"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

func (s Side) Opposite() Side {
	if s == BUY {
		return SELL
	}
	return BUY
}

type OrderType string

const (
	LIMIT  OrderType = "LIMIT"
	MARKET OrderType = "MARKET"
)

type OrderStatus string

const (
	StatusPending         OrderStatus = "Pending"
	StatusPartiallyFilled OrderStatus = "PartiallyFilled"
	StatusFilled          OrderStatus = "Filled"
	StatusCancelled       OrderStatus = "Cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusFilled || s == StatusCancelled
}

// Order carries immutable identity plus mutable fill state for one order.
// The engine is the sole mutator; callers only ever see value copies.
type Order struct {
	ID             string
	Instrument     instrument.Key
	Side           Side
	Type           OrderType
	Price          decimal.Decimal // limit price; unset for market orders
	Quantity       int64
	FilledQuantity int64
	Status         OrderStatus
	SequenceNumber uint64 // arrival order, the sole time-priority tie-breaker
	OwnerID        string
	SubmittedAt    time.Time

	// level queue links, owned by the book side holding the order
	next, prev *Order
}

func (o *Order) Remaining() int64 {
	return o.Quantity - o.FilledQuantity
}

// applyFill books qty against the order and recomputes its status.
func (o *Order) applyFill(qty int64) {
	o.FilledQuantity += qty
	if o.FilledQuantity == o.Quantity {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartiallyFilled
	}
}

// snapshot returns a detached copy safe to hand to callers.
func (o *Order) snapshot() Order {
	cp := *o
	cp.next, cp.prev = nil, nil
	return cp
}
