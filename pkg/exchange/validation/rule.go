package validation

import (
	"errors"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
)

// Rule checks one aspect of an order before it reaches the engine. A
// failing rule rejects the order with no book mutation.
type Rule interface {
	Check(order *model.Order) error
}

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrBelowMinOrderSize = errors.New("quantity below minimum order size")
	ErrPriceOutOfBand    = errors.New("price outside allowed band")
	ErrInvalidTickSize   = errors.New("invalid tick size")
)

// CheckAll runs the rules in order and returns the first failure.
func CheckAll(rules []Rule, order *model.Order) error {
	for _, r := range rules {
		if err := r.Check(order); err != nil {
			return err
		}
	}
	return nil
}
