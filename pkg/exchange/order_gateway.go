package exchange

import (
	"context"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
)

// OrderGateway is the transport the service reports through; the FIX
// acceptor is the production implementation.
type OrderGateway interface {
	Start(ctx context.Context) error

	// service to client
	OnOrderReport(ctx context.Context, order model.Order)
}
