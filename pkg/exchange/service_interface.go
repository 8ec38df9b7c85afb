package exchange

import (
	"context"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
)

// IService is the order entry surface a gateway drives.
type IService interface {
	AddOrder(ctx context.Context, addOrder *model.AddOrder) error
	CancelOrder(ctx context.Context, cancelOrder *model.CancelOrder) error
}
