package validation

import (
	"errors"
	"testing"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/shopspring/decimal"
)

func testCatalog() *instrument.Catalog {
	catalog := instrument.NewCatalog()
	catalog.Register(instrument.Key{Symbol: "EURUSD", Settlement: "202609"}, instrument.CurrencyFuture{
		Pair:       "EUR/USD",
		Settlement: "202609",
		Spot:       decimal.NewFromFloat(1.1021),
		Premium:    decimal.NewFromFloat(0.0034),
		MinSize:    1000,
	})
	return catalog
}

func limitOrder(symbol string, price float64, qty int64) *model.Order {
	return &model.Order{
		Symbol:     symbol,
		Settlement: "202609",
		Type:       model.OrderTypeLimit,
		Price:      decimal.NewFromFloat(price),
		Quantity:   qty,
	}
}

func TestMinOrderSizeRule(t *testing.T) {
	rule := NewMinOrderSizeRule(testCatalog())

	if err := rule.Check(limitOrder("EURUSD", 1.1050, 1000)); err != nil {
		t.Errorf("valid order rejected: %v", err)
	}

	err := rule.Check(limitOrder("EURUSD", 1.1050, 999))
	if !errors.Is(err, ErrBelowMinOrderSize) {
		t.Errorf("err = %v, want ErrBelowMinOrderSize", err)
	}

	err = rule.Check(limitOrder("GBPUSD", 1.25, 1000))
	if !errors.Is(err, ErrUnknownInstrument) {
		t.Errorf("err = %v, want ErrUnknownInstrument", err)
	}
}

func TestPriceBandRule(t *testing.T) {
	rule := &PriceBandRule{Bands: map[string]Band{
		"EURUSD": {Floor: decimal.NewFromFloat(1.0), Ceil: decimal.NewFromFloat(1.2)},
	}}

	if err := rule.Check(limitOrder("EURUSD", 1.1050, 1000)); err != nil {
		t.Errorf("in-band price rejected: %v", err)
	}

	err := rule.Check(limitOrder("EURUSD", 1.5, 1000))
	if !errors.Is(err, ErrPriceOutOfBand) {
		t.Errorf("err = %v, want ErrPriceOutOfBand", err)
	}

	// symbols without a band are unrestricted
	if err := rule.Check(limitOrder("GBPUSD", 99.0, 1000)); err != nil {
		t.Errorf("unbanded symbol rejected: %v", err)
	}

	market := limitOrder("EURUSD", 0, 1000)
	market.Type = model.OrderTypeMarket
	if err := rule.Check(market); err != nil {
		t.Errorf("market order rejected: %v", err)
	}
}

func TestTickSizeRule(t *testing.T) {
	rule := &TickSizeRule{Config: map[string][]tickStep{
		"XFUT": {
			{MaxPrice: decimal.NewFromInt(10), Step: decimal.NewFromFloat(0.0001)},
			{Step: decimal.NewFromFloat(0.01)},
		},
	}}

	order := limitOrder("EURUSD", 1.1050, 1000)
	order.Exchange = "XFUT"
	if err := rule.Check(order); err != nil {
		t.Errorf("aligned price rejected: %v", err)
	}

	order.Price = decimal.NewFromFloat(1.10503)
	err := rule.Check(order)
	if !errors.Is(err, ErrInvalidTickSize) {
		t.Errorf("err = %v, want ErrInvalidTickSize", err)
	}

	// above the first band the coarser step applies
	order.Price = decimal.NewFromFloat(78.41)
	if err := rule.Check(order); err != nil {
		t.Errorf("coarse-step price rejected: %v", err)
	}

	order.Exchange = "UNKNOWN"
	order.Price = decimal.NewFromFloat(1.10503)
	if err := rule.Check(order); err != nil {
		t.Errorf("exchange without config rejected: %v", err)
	}
}

func TestCheckAllReturnsFirstFailure(t *testing.T) {
	rules := []Rule{
		NewMinOrderSizeRule(testCatalog()),
		&PriceBandRule{Bands: map[string]Band{
			"EURUSD": {Floor: decimal.NewFromFloat(1.0), Ceil: decimal.NewFromFloat(1.2)},
		}},
	}

	err := CheckAll(rules, limitOrder("EURUSD", 1.5, 10))
	if !errors.Is(err, ErrBelowMinOrderSize) {
		t.Errorf("err = %v, want the first rule's failure", err)
	}

	if err := CheckAll(rules, limitOrder("EURUSD", 1.1, 1000)); err != nil {
		t.Errorf("valid order rejected: %v", err)
	}
}
