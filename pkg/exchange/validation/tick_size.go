package validation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/shopspring/decimal"
)

type tickStep struct {
	MaxPrice decimal.Decimal `json:"maxPrice"` // zero = no upper bound
	Step     decimal.Decimal `json:"step"`
}

// TickSizeRule validates limit prices against per-exchange step tables.
type TickSizeRule struct {
	Config map[string][]tickStep
}

// NewTickSizeRuleFromFile loads the step table from a JSON file keyed by
// exchange code.
func NewTickSizeRuleFromFile(path string) (*TickSizeRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg map[string][]tickStep
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &TickSizeRule{Config: cfg}, nil
}

func (r *TickSizeRule) Check(order *model.Order) error {
	steps, ok := r.Config[order.Exchange]
	if !ok { // no config -> no rule
		return nil
	}

	for _, s := range steps {
		if s.MaxPrice.IsZero() || order.Price.Cmp(s.MaxPrice) <= 0 {
			if !order.Price.Mod(s.Step).IsZero() {
				return fmt.Errorf("%w: %s not a multiple of %s", ErrInvalidTickSize, order.Price, s.Step)
			}
			return nil
		}
	}

	return nil
}
