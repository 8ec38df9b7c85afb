package instrument

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Key identifies one tradable future: an underlying symbol plus a
// settlement date. Every order book is partitioned by Key.
type Key struct {
	Symbol     string
	Settlement string // e.g. "2026-09"
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Symbol, k.Settlement)
}

// Descriptor is the read-only instrument metadata the engine and the
// validation layer consume. It never influences matching price or priority.
type Descriptor interface {
	DisplayName() string
	MinOrderSize() int64
}

// CurrencyFuture describes a future on a currency pair.
type CurrencyFuture struct {
	Pair       string // e.g. "EUR/USD"
	Settlement string
	Spot       decimal.Decimal
	Premium    decimal.Decimal
	MinSize    int64
}

func (c CurrencyFuture) DisplayName() string { return c.Pair + " " + c.Settlement }
func (c CurrencyFuture) MinOrderSize() int64 { return c.MinSize }

// FuturePrice is the indicative price shown by the front end, spot plus premium.
func (c CurrencyFuture) FuturePrice() decimal.Decimal {
	return c.Spot.Add(c.Premium)
}

// CommodityFuture describes a future on a physical commodity.
type CommodityFuture struct {
	Name     string // e.g. "Crude Oil"
	Delivery string
	Unit     string // e.g. "bbl"
	Spot     decimal.Decimal
	Premium  decimal.Decimal
	MinSize  int64
}

func (c CommodityFuture) DisplayName() string { return c.Name + " " + c.Delivery }
func (c CommodityFuture) MinOrderSize() int64 { return c.MinSize }

func (c CommodityFuture) FuturePrice() decimal.Decimal {
	return c.Spot.Add(c.Premium)
}
