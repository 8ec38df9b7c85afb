package orderbook

import "github.com/shopspring/decimal"

// PriceLevel is the externally visible aggregate of one price on one side.
type PriceLevel struct {
	Price             decimal.Decimal
	AggregateQuantity int64
	OrderCount        int
}

// priceLevel holds the resting orders at one price as a FIFO queue,
// earliest sequence number at the head.
type priceLevel struct {
	price      decimal.Decimal
	head       *Order
	tail       *Order
	totalQty   int64
	orderCount int
}

func (l *priceLevel) enqueue(o *Order) {
	if l.head == nil {
		l.head = o
		l.tail = o
	} else {
		l.tail.next = o
		o.prev = l.tail
		l.tail = o
	}
	l.totalQty += o.Remaining()
	l.orderCount++
}

func (l *priceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next, o.prev = nil, nil
	l.totalQty -= o.Remaining()
	l.orderCount--
}

// reduce books a partial fill of an order still resting on this level.
func (l *priceLevel) reduce(qty int64) {
	l.totalQty -= qty
}

func (l *priceLevel) empty() bool {
	return l.head == nil
}

func (l *priceLevel) aggregate() PriceLevel {
	return PriceLevel{
		Price:             l.price,
		AggregateQuantity: l.totalQty,
		OrderCount:        l.orderCount,
	}
}
