package orderbook

import (
	"iter"
	"sync"
	"time"

	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// tradeStamper hands out a fresh trade id and global trade sequence number.
type tradeStamper func() (string, uint64)

// orderBook holds the resting liquidity for one instrument key. All access
// goes through the mutex: matching runs to completion inside the call that
// triggered it, so no caller can observe a partially matched book.
type orderBook struct {
	key  instrument.Key
	bids *bookSide
	asks *bookSide

	// every order ever placed on this book; orders are terminal-marked,
	// never deleted
	orders map[string]*Order

	ledger deque.Deque[Trade]

	stamp tradeStamper

	mu sync.Mutex
}

func newOrderBook(key instrument.Key, stamp tradeStamper) *orderBook {
	return &orderBook{
		key:    key,
		bids:   newBookSide(BUY),
		asks:   newBookSide(SELL),
		orders: make(map[string]*Order),
		stamp:  stamp,
	}
}

func (ob *orderBook) sideOf(s Side) *bookSide {
	if s == BUY {
		return ob.bids
	}
	return ob.asks
}

// place runs the matching algorithm for an incoming order and rests any
// limit remainder. Market remainders are cancelled: once the opposite side
// is exhausted there is no meaningful price left to rest at. The returned
// snapshot is taken while the lock is still held; once it is released a
// rested order may be mutated by concurrent matching at any time.
func (ob *orderBook) place(o *Order) (Order, []Trade) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.orders[o.ID] = o

	trades := ob.match(o)

	if o.Remaining() > 0 {
		if o.Type == LIMIT {
			ob.sideOf(o.Side).insert(o)
		} else {
			o.Status = StatusCancelled
		}
	}

	for _, t := range trades {
		ob.ledger.PushBack(t)
	}

	return o.snapshot(), trades
}

func (ob *orderBook) match(o *Order) []Trade {
	var trades []Trade
	counter := ob.sideOf(o.Side.Opposite())

	for o.Remaining() > 0 {
		lvl := counter.best()
		if lvl == nil {
			break
		}
		if o.Type == LIMIT && !crosses(o.Side, o.Price, lvl.price) {
			break
		}

		// head of the level is the earliest arrival at the best price
		maker := lvl.head
		qty := min(o.Remaining(), maker.Remaining())

		o.applyFill(qty)
		maker.applyFill(qty)
		lvl.reduce(qty)

		id, seq := ob.stamp()
		t := Trade{
			ID:             id,
			Instrument:     ob.key,
			Price:          lvl.price, // maker price, never the taker's
			Quantity:       qty,
			SequenceNumber: seq,
			Timestamp:      time.Now(),
		}
		if o.Side == BUY {
			t.BuyOrderID, t.SellOrderID = o.ID, maker.ID
		} else {
			t.BuyOrderID, t.SellOrderID = maker.ID, o.ID
		}
		trades = append(trades, t)

		if maker.Remaining() == 0 {
			lvl.unlink(maker)
			delete(counter.orders, maker.ID)
			counter.dropIfEmpty(lvl)
		}
	}

	return trades
}

func crosses(side Side, limit, best decimal.Decimal) bool {
	if side == BUY {
		return limit.Cmp(best) >= 0
	}
	return limit.Cmp(best) <= 0
}

// cancel marks an order cancelled and removes its resting remainder.
// Already-booked fills and their trades are untouched.
func (ob *orderBook) cancel(orderID string) error {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	o, ok := ob.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Status.Terminal() {
		return ErrAlreadyTerminal
	}

	ob.sideOf(o.Side).remove(o.ID)
	o.Status = StatusCancelled

	return nil
}

func (ob *orderBook) bestBid() (PriceLevel, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if lvl := ob.bids.best(); lvl != nil {
		return lvl.aggregate(), true
	}
	return PriceLevel{}, false
}

func (ob *orderBook) bestAsk() (PriceLevel, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if lvl := ob.asks.best(); lvl != nil {
		return lvl.aggregate(), true
	}
	return PriceLevel{}, false
}

// levels yields price level aggregates most aggressive price first. The
// sequence is restartable; the book lock is held while a walk is running.
func (ob *orderBook) levels(side Side) iter.Seq[PriceLevel] {
	return func(yield func(PriceLevel) bool) {
		ob.mu.Lock()
		defer ob.mu.Unlock()

		ob.sideOf(side).each(func(lvl *priceLevel) bool {
			return yield(lvl.aggregate())
		})
	}
}

// depth snapshots both sides, best price first.
func (ob *orderBook) depth() (bids, asks []PriceLevel) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.bids.each(func(lvl *priceLevel) bool {
		bids = append(bids, lvl.aggregate())
		return true
	})
	ob.asks.each(func(lvl *priceLevel) bool {
		asks = append(asks, lvl.aggregate())
		return true
	})
	return bids, asks
}

// trades copies the append-only ledger.
func (ob *orderBook) trades() []Trade {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	out := make([]Trade, 0, ob.ledger.Len())
	for i := 0; i < ob.ledger.Len(); i++ {
		out = append(out, ob.ledger.At(i))
	}
	return out
}

// openOrders snapshots the resting orders belonging to one owner.
func (ob *orderBook) openOrders(ownerID string) []Order {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	var out []Order
	for _, o := range ob.bids.orders {
		if o.OwnerID == ownerID {
			out = append(out, o.snapshot())
		}
	}
	for _, o := range ob.asks.orders {
		if o.OwnerID == ownerID {
			out = append(out, o.snapshot())
		}
	}
	return out
}

// order snapshots a single order by id.
func (ob *orderBook) order(orderID string) (Order, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	o, ok := ob.orders[orderID]
	if !ok {
		return Order{}, false
	}
	return o.snapshot(), true
}
