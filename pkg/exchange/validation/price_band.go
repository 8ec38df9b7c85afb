package validation

import (
	"fmt"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/shopspring/decimal"
)

type Band struct {
	Floor decimal.Decimal
	Ceil  decimal.Decimal
}

// PriceBandRule keeps limit prices inside a per-symbol band. Symbols
// without a band are unrestricted; market orders carry no price to check.
type PriceBandRule struct {
	Bands map[string]Band
}

func (r *PriceBandRule) Check(order *model.Order) error {
	if order.Type == model.OrderTypeMarket {
		return nil
	}
	band, ok := r.Bands[order.Symbol]
	if !ok {
		return nil
	}
	if order.Price.Cmp(band.Floor) < 0 || order.Price.Cmp(band.Ceil) > 0 {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrPriceOutOfBand, order.Price, band.Floor, band.Ceil)
	}
	return nil
}
