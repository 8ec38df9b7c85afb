package orderbook

import (
	"time"

	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/shopspring/decimal"
)

// Trade records one match between two orders. Trades are immutable once
// created and accumulate in an append-only per-instrument ledger.
// Price is always the resting (maker) order's limit price.
type Trade struct {
	ID             string
	Instrument     instrument.Key
	Price          decimal.Decimal
	Quantity       int64
	BuyOrderID     string
	SellOrderID    string
	SequenceNumber uint64
	Timestamp      time.Time
}
