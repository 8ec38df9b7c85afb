package repo

import (
	"context"

	"github.com/futuresdesk/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeRecord is the persisted form of an executed trade.
type TradeRecord struct {
	TradeID        string `gorm:"primaryKey"`
	Symbol         string
	Settlement     string
	Price          decimal.Decimal `gorm:"type:numeric"`
	Quantity       int64
	BuyOrderID     string
	SellOrderID    string
	SequenceNumber uint64
	ExecutedAt     int64 // unix nanos
}

func (TradeRecord) TableName() string { return "trades" }

func NewTradeRecord(t orderbook.Trade) *TradeRecord {
	return &TradeRecord{
		TradeID:        t.ID,
		Symbol:         t.Instrument.Symbol,
		Settlement:     t.Instrument.Settlement,
		Price:          t.Price,
		Quantity:       t.Quantity,
		BuyOrderID:     t.BuyOrderID,
		SellOrderID:    t.SellOrderID,
		SequenceNumber: t.SequenceNumber,
		ExecutedAt:     t.Timestamp.UnixNano(),
	}
}

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (r *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *TradeSQLRepo) Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error) {
	return record, r.dbWithContext(ctx).Create(record).Error
}

func (r *TradeSQLRepo) BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error) {
	return records, r.dbWithContext(ctx).Create(records).Error
}

func (r *TradeSQLRepo) ListBySymbol(ctx context.Context, symbol, settlement string, limit int) ([]*TradeRecord, error) {
	var records []*TradeRecord
	err := r.dbWithContext(ctx).
		Where("symbol = ? AND settlement = ?", symbol, settlement).
		Order("sequence_number DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
