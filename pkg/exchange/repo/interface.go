package repo

import (
	"context"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
)

type IOrderEvent interface {
	Create(ctx context.Context, record *model.OrderEvent) (*model.OrderEvent, error)
	BulkCreate(ctx context.Context, records []*model.OrderEvent) ([]*model.OrderEvent, error)
}

type ITrade interface {
	Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error)
	BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error)
	ListBySymbol(ctx context.Context, symbol, settlement string, limit int) ([]*TradeRecord, error)
}
