package validation

import (
	"fmt"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/futuresdesk/matching-engine/pkg/instrument"
)

// MinOrderSizeRule rejects orders on instruments missing from the catalog
// and orders below the instrument's minimum size.
type MinOrderSizeRule struct {
	Catalog *instrument.Catalog
}

func NewMinOrderSizeRule(catalog *instrument.Catalog) *MinOrderSizeRule {
	return &MinOrderSizeRule{Catalog: catalog}
}

func (r *MinOrderSizeRule) Check(order *model.Order) error {
	key := instrument.Key{Symbol: order.Symbol, Settlement: order.Settlement}
	d, ok := r.Catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownInstrument, key)
	}
	if order.Quantity < d.MinOrderSize() {
		return fmt.Errorf("%w: %d < %d", ErrBelowMinOrderSize, order.Quantity, d.MinOrderSize())
	}
	return nil
}
