package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/futuresdesk/matching-engine/pkg/exchange/repo"
	"github.com/shopspring/decimal"
)

type stubOrderEventRepo struct {
	created []*model.OrderEvent
}

func (s *stubOrderEventRepo) Create(ctx context.Context, record *model.OrderEvent) (*model.OrderEvent, error) {
	s.created = append(s.created, record)
	return record, nil
}

func (s *stubOrderEventRepo) BulkCreate(ctx context.Context, records []*model.OrderEvent) ([]*model.OrderEvent, error) {
	s.created = append(s.created, records...)
	return records, nil
}

type stubTradeRepo struct {
	created []*repo.TradeRecord
}

func (s *stubTradeRepo) Create(ctx context.Context, record *repo.TradeRecord) (*repo.TradeRecord, error) {
	s.created = append(s.created, record)
	return record, nil
}

func (s *stubTradeRepo) BulkCreate(ctx context.Context, records []*repo.TradeRecord) ([]*repo.TradeRecord, error) {
	s.created = append(s.created, records...)
	return records, nil
}

func (s *stubTradeRepo) ListBySymbol(ctx context.Context, symbol, settlement string, limit int) ([]*repo.TradeRecord, error) {
	return s.created, nil
}

type stubRepo struct {
	orderEvent *stubOrderEventRepo
	trade      *stubTradeRepo
}

func (s *stubRepo) OrderEvent() repo.IOrderEvent { return s.orderEvent }
func (s *stubRepo) Trade() repo.ITrade           { return s.trade }

func newStubRepo() *stubRepo {
	return &stubRepo{orderEvent: &stubOrderEventRepo{}, trade: &stubTradeRepo{}}
}

func TestHandleEventPersists(t *testing.T) {
	r := newStubRepo()
	w := NewWorker(r)

	ev := model.OrderEvent{
		EventID:     "O1-New",
		OrderID:     "O1",
		GatewayID:   "C1",
		Symbol:      "EURUSD",
		Settlement:  "202609",
		OrderStatus: model.OrderStatusNew,
	}
	if err := w.handleEvent(context.Background(), ev); err != nil {
		t.Fatalf("handleEvent: %v", err)
	}

	if len(r.orderEvent.created) != 1 {
		t.Fatalf("created %d events, want 1", len(r.orderEvent.created))
	}
	if r.orderEvent.created[0].EventID != "O1-New" {
		t.Errorf("EventID = %q, want O1-New", r.orderEvent.created[0].EventID)
	}
}

func TestHandleTradeBatch(t *testing.T) {
	r := newStubRepo()
	w := NewWorker(r)

	rec := repo.TradeRecord{
		TradeID:        "T1",
		Symbol:         "EURUSD",
		Settlement:     "202609",
		Price:          decimal.NewFromFloat(1.1050),
		Quantity:       400,
		BuyOrderID:     "O1",
		SellOrderID:    "O2",
		SequenceNumber: 1,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	payloads := [][]byte{b, []byte("not-json"), b}
	if err := w.HandleTradeBatch(context.Background(), payloads); err != nil {
		t.Fatalf("HandleTradeBatch: %v", err)
	}

	// malformed payloads are skipped, not fatal
	if len(r.trade.created) != 2 {
		t.Fatalf("created %d trades, want 2", len(r.trade.created))
	}
	if r.trade.created[0].TradeID != "T1" {
		t.Errorf("TradeID = %q, want T1", r.trade.created[0].TradeID)
	}
}

func TestHandleTradeBatchEmpty(t *testing.T) {
	r := newStubRepo()
	w := NewWorker(r)

	if err := w.HandleTradeBatch(context.Background(), nil); err != nil {
		t.Fatalf("HandleTradeBatch(nil): %v", err)
	}
	if len(r.trade.created) != 0 {
		t.Errorf("created %d trades, want 0", len(r.trade.created))
	}
}
