package orderbook

import (
	"iter"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewOrderRequest is the engine's order submission surface. Identity and
// sequence numbers are assigned by the engine, never by the caller.
type NewOrderRequest struct {
	Instrument instrument.Key
	Side       Side
	Type       OrderType
	Price      decimal.Decimal // required for LIMIT, ignored for MARKET
	Quantity   int64
	OwnerID    string
}

// Depth is a point-in-time snapshot of both sides of a book.
type Depth struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// MatchingEngine is the single authority for order placement and
// cancellation across all instrument keys. Matching for different
// instruments proceeds independently; within one instrument it is strictly
// serialized by the book's lock. The engine performs no I/O.
type MatchingEngine struct {
	catalog *instrument.Catalog // optional, used for minimum-size checks

	books sync.Map // instrument.Key -> *orderBook
	index sync.Map // orderID -> *orderBook

	orderSeq atomic.Uint64
	tradeSeq atomic.Uint64

	callbacks []func([]Trade)
}

// NewMatchingEngine builds an engine. catalog may be nil, in which case
// minimum-order-size validation is skipped and any instrument is accepted.
func NewMatchingEngine(catalog *instrument.Catalog) *MatchingEngine {
	return &MatchingEngine{catalog: catalog}
}

// RegisterTradeCallback subscribes fn to every batch of trades produced by
// a single PlaceOrder call. Register before submitting orders.
func (e *MatchingEngine) RegisterTradeCallback(fn func([]Trade)) {
	e.callbacks = append(e.callbacks, fn)
}

// Reset drops all books, orders and counters. Meant for the owner's
// construction/reset lifecycle, not for concurrent use.
func (e *MatchingEngine) Reset() {
	e.books.Range(func(k, _ any) bool {
		e.books.Delete(k)
		return true
	})
	e.index.Range(func(k, _ any) bool {
		e.index.Delete(k)
		return true
	})
	e.orderSeq.Store(0)
	e.tradeSeq.Store(0)
}

// PlaceOrder validates the request, matches it against resting liquidity
// and rests any limit remainder. It returns the resulting order state and
// the trades produced by this call, in execution order.
func (e *MatchingEngine) PlaceOrder(req NewOrderRequest) (Order, []Trade, error) {
	if err := e.validate(req); err != nil {
		return Order{}, nil, err
	}

	o := &Order{
		ID:             uuid.NewString(),
		Instrument:     req.Instrument,
		Side:           req.Side,
		Type:           req.Type,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         StatusPending,
		SequenceNumber: e.orderSeq.Add(1),
		OwnerID:        req.OwnerID,
		SubmittedAt:    time.Now(),
	}
	if o.Type == "" {
		o.Type = LIMIT
	}
	if o.Type == MARKET {
		o.Price = decimal.Decimal{}
	}

	book := e.bookFor(req.Instrument)
	e.index.Store(o.ID, book)

	snap, trades := book.place(o)

	if len(trades) > 0 {
		for _, cb := range e.callbacks {
			cb(trades)
		}
	}

	return snap, trades, nil
}

func (e *MatchingEngine) validate(req NewOrderRequest) error {
	if req.Quantity <= 0 {
		return ErrInvalidOrderQty
	}
	if req.Type != MARKET && req.Price.Sign() <= 0 {
		return ErrInvalidOrderPrice
	}
	if e.catalog != nil {
		if d, ok := e.catalog.Lookup(req.Instrument); ok && req.Quantity < d.MinOrderSize() {
			return ErrBelowMinOrderSize
		}
	}
	return nil
}

// CancelOrder marks the order cancelled and removes any resting remainder.
// Returns ErrOrderNotFound for unknown ids and ErrAlreadyTerminal for
// orders that are already filled or cancelled; neither changes state.
func (e *MatchingEngine) CancelOrder(orderID string) error {
	v, ok := e.index.Load(orderID)
	if !ok {
		return ErrOrderNotFound
	}
	return v.(*orderBook).cancel(orderID)
}

// GetOrder returns the current state of any order ever placed.
func (e *MatchingEngine) GetOrder(orderID string) (Order, error) {
	v, ok := e.index.Load(orderID)
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	o, ok := v.(*orderBook).order(orderID)
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return o, nil
}

// GetOrderBook snapshots the current depth for one instrument. An
// instrument with no book yet yields an empty depth.
func (e *MatchingEngine) GetOrderBook(key instrument.Key) Depth {
	v, ok := e.books.Load(key)
	if !ok {
		return Depth{}
	}
	bids, asks := v.(*orderBook).depth()
	return Depth{Bids: bids, Asks: asks}
}

// BestBid returns the top bid level for one instrument.
func (e *MatchingEngine) BestBid(key instrument.Key) (PriceLevel, bool) {
	if v, ok := e.books.Load(key); ok {
		return v.(*orderBook).bestBid()
	}
	return PriceLevel{}, false
}

// BestAsk returns the top ask level for one instrument.
func (e *MatchingEngine) BestAsk(key instrument.Key) (PriceLevel, bool) {
	if v, ok := e.books.Load(key); ok {
		return v.(*orderBook).bestAsk()
	}
	return PriceLevel{}, false
}

// Levels yields price level aggregates for one side of one book, most
// aggressive price first. The sequence is restartable.
func (e *MatchingEngine) Levels(key instrument.Key, side Side) iter.Seq[PriceLevel] {
	if v, ok := e.books.Load(key); ok {
		return v.(*orderBook).levels(side)
	}
	return func(func(PriceLevel) bool) {}
}

// GetTrades returns the trade ledger for one instrument in execution order.
func (e *MatchingEngine) GetTrades(key instrument.Key) []Trade {
	if v, ok := e.books.Load(key); ok {
		return v.(*orderBook).trades()
	}
	return nil
}

// AllTrades returns every trade across instruments, ordered by the global
// trade sequence number.
func (e *MatchingEngine) AllTrades() []Trade {
	var out []Trade
	e.books.Range(func(_, v any) bool {
		out = append(out, v.(*orderBook).trades()...)
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].SequenceNumber < out[j].SequenceNumber
	})
	return out
}

// GetOpenOrders returns the resting orders of one owner across all
// instruments, ordered by arrival.
func (e *MatchingEngine) GetOpenOrders(ownerID string) []Order {
	var out []Order
	e.books.Range(func(_, v any) bool {
		out = append(out, v.(*orderBook).openOrders(ownerID)...)
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].SequenceNumber < out[j].SequenceNumber
	})
	return out
}

func (e *MatchingEngine) bookFor(key instrument.Key) *orderBook {
	if v, ok := e.books.Load(key); ok {
		return v.(*orderBook)
	}

	book := newOrderBook(key, func() (string, uint64) {
		return uuid.NewString(), e.tradeSeq.Add(1)
	})
	actual, _ := e.books.LoadOrStore(key, book)
	return actual.(*orderBook)
}
