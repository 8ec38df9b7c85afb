package orderbook

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"
)

// bookSide holds one side of a book: a red-black tree of price levels with
// the most aggressive price first, plus an id index for O(log n) removal.
type bookSide struct {
	side   Side
	levels *redblacktree.Tree
	orders map[string]*Order
}

func newBookSide(side Side) *bookSide {
	cmp := func(a, b interface{}) int {
		c := a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
		if side == BUY { // highest bid first
			return -c
		}
		return c
	}

	return &bookSide{
		side:   side,
		levels: redblacktree.NewWith(cmp),
		orders: make(map[string]*Order),
	}
}

// insert places a resting order at the tail of its price level's queue.
func (s *bookSide) insert(o *Order) {
	var lvl *priceLevel
	if v, ok := s.levels.Get(o.Price); ok {
		lvl = v.(*priceLevel)
	} else {
		lvl = &priceLevel{price: o.Price}
		s.levels.Put(o.Price, lvl)
	}
	lvl.enqueue(o)
	s.orders[o.ID] = o
}

// remove takes an order out of its level; reports false if not resting here.
func (s *bookSide) remove(orderID string) (*Order, bool) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, false
	}
	delete(s.orders, orderID)

	if v, found := s.levels.Get(o.Price); found {
		lvl := v.(*priceLevel)
		lvl.unlink(o)
		if lvl.empty() {
			s.levels.Remove(o.Price)
		}
	}
	return o, true
}

// best returns the level at the most aggressive price, or nil when empty.
func (s *bookSide) best() *priceLevel {
	node := s.levels.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*priceLevel)
}

// dropIfEmpty removes a level that matching has drained.
func (s *bookSide) dropIfEmpty(lvl *priceLevel) {
	if lvl.empty() {
		s.levels.Remove(lvl.price)
	}
}

// each walks the levels best price first until fn returns false.
func (s *bookSide) each(fn func(*priceLevel) bool) {
	it := s.levels.Iterator()
	for it.Next() {
		if !fn(it.Value().(*priceLevel)) {
			return
		}
	}
}

func (s *bookSide) len() int {
	return len(s.orders)
}
