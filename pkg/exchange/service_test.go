package exchange

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/futuresdesk/matching-engine/pkg/exchange/validation"
	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/futuresdesk/matching-engine/pkg/orderbook"
	"github.com/shopspring/decimal"
)

type stubGateway struct {
	mu      sync.Mutex
	reports []model.Order
}

func (g *stubGateway) Start(ctx context.Context) error { return nil }

func (g *stubGateway) OnOrderReport(ctx context.Context, order model.Order) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reports = append(g.reports, order)
}

func (g *stubGateway) reportsFor(gatewayID string) []model.Order {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []model.Order
	for _, r := range g.reports {
		if r.GatewayID == gatewayID {
			out = append(out, r)
		}
	}
	return out
}

func (g *stubGateway) lastStatus(gatewayID string) model.OrderStatus {
	rs := g.reportsFor(gatewayID)
	if len(rs) == 0 {
		return ""
	}
	return rs[len(rs)-1].Status
}

var serviceTestKey = instrument.Key{Symbol: "EURUSD", Settlement: "202609"}

func newTestService(t *testing.T) (*Service, *stubGateway, *orderbook.MatchingEngine) {
	t.Helper()

	catalog := instrument.NewCatalog()
	catalog.Register(serviceTestKey, instrument.CurrencyFuture{
		Pair:       "EUR/USD",
		Settlement: "202609",
		Spot:       decimal.NewFromFloat(1.1021),
		Premium:    decimal.NewFromFloat(0.0034),
		MinSize:    100,
	})

	engine := orderbook.NewMatchingEngine(catalog)
	gw := &stubGateway{}
	svc := NewService(gw, engine,
		WithRules(validation.NewMinOrderSizeRule(catalog)),
	)
	return svc, gw, engine
}

func addOrder(gatewayID, account string, side model.OrderSide, price float64, qty int64) *model.AddOrder {
	return &model.AddOrder{
		GatewayID:    gatewayID,
		Account:      account,
		Symbol:       serviceTestKey.Symbol,
		Settlement:   serviceTestKey.Settlement,
		Type:         model.OrderTypeLimit,
		Price:        decimal.NewFromFloat(price),
		Side:         side,
		Quantity:     qty,
		TransactTime: time.Now(),
	}
}

func TestAddOrderRestsAndReportsNew(t *testing.T) {
	svc, gw, engine := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("C1", "ACC1", model.OrderSideBuy, 1.1050, 1000)); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	if got := gw.lastStatus("C1"); got != model.OrderStatusNew {
		t.Errorf("last status = %s, want %s", got, model.OrderStatusNew)
	}

	best, ok := engine.BestBid(serviceTestKey)
	if !ok {
		t.Fatal("expected resting bid")
	}
	if best.AggregateQuantity != 1000 {
		t.Errorf("best bid qty = %d, want 1000", best.AggregateQuantity)
	}
}

func TestAddOrderValidationRejects(t *testing.T) {
	svc, gw, engine := newTestService(t)
	ctx := context.Background()

	small := addOrder("C1", "ACC1", model.OrderSideBuy, 1.1050, 10)
	if err := svc.AddOrder(ctx, small); err == nil {
		t.Fatal("expected rejection for quantity below minimum")
	}

	if got := gw.lastStatus("C1"); got != model.OrderStatusRejected {
		t.Errorf("last status = %s, want %s", got, model.OrderStatusRejected)
	}

	if _, ok := engine.BestBid(serviceTestKey); ok {
		t.Error("rejected order must not rest")
	}

	unknown := addOrder("C2", "ACC1", model.OrderSideBuy, 1.1050, 1000)
	unknown.Symbol = "GBPUSD"
	if err := svc.AddOrder(ctx, unknown); err == nil {
		t.Fatal("expected rejection for unknown instrument")
	}
	if got := gw.lastStatus("C2"); got != model.OrderStatusRejected {
		t.Errorf("last status = %s, want %s", got, model.OrderStatusRejected)
	}
}

func TestAddOrderDuplicateGatewayID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("C1", "ACC1", model.OrderSideBuy, 1.1050, 1000)); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}
	if err := svc.AddOrder(ctx, addOrder("C1", "ACC1", model.OrderSideBuy, 1.1050, 1000)); err == nil {
		t.Fatal("expected duplicate gateway id to be refused")
	}
}

func TestMatchReportsBothLegs(t *testing.T) {
	svc, gw, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("S1", "ACC1", model.OrderSideSell, 1.1050, 1000)); err != nil {
		t.Fatalf("AddOrder sell: %v", err)
	}
	if err := svc.AddOrder(ctx, addOrder("B1", "ACC2", model.OrderSideBuy, 1.1060, 400)); err != nil {
		t.Fatalf("AddOrder buy: %v", err)
	}

	if got := gw.lastStatus("B1"); got != model.OrderStatusFilled {
		t.Errorf("buy status = %s, want %s", got, model.OrderStatusFilled)
	}
	if got := gw.lastStatus("S1"); got != model.OrderStatusPartiallyFilled {
		t.Errorf("sell status = %s, want %s", got, model.OrderStatusPartiallyFilled)
	}

	sellReports := gw.reportsFor("S1")
	last := sellReports[len(sellReports)-1]
	if last.CumQuantity != 400 || last.LeavesQuantity != 600 {
		t.Errorf("sell cum/leaves = %d/%d, want 400/600", last.CumQuantity, last.LeavesQuantity)
	}
	// trade prints at the resting order's price
	if !last.LastPrice.Equal(decimal.NewFromFloat(1.1050)) {
		t.Errorf("last price = %s, want 1.1050", last.LastPrice)
	}
}

func TestCancelOrder(t *testing.T) {
	svc, gw, engine := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("C1", "ACC1", model.OrderSideBuy, 1.1050, 1000)); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	if err := svc.CancelOrder(ctx, &model.CancelOrder{GatewayID: "X1", OrigGatewayID: "C1"}); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	if got := gw.lastStatus("X1"); got != model.OrderStatusCanceled {
		t.Errorf("last status = %s, want %s", got, model.OrderStatusCanceled)
	}
	if _, ok := engine.BestBid(serviceTestKey); ok {
		t.Error("cancelled order still resting")
	}
}

func TestCancelUnknownGatewayID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.CancelOrder(ctx, &model.CancelOrder{OrigGatewayID: "nope"}); err == nil {
		t.Fatal("expected error for unknown gateway id")
	}
}

func TestCancelFilledOrderRefused(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("S1", "ACC1", model.OrderSideSell, 1.1050, 500)); err != nil {
		t.Fatalf("AddOrder sell: %v", err)
	}
	if err := svc.AddOrder(ctx, addOrder("B1", "ACC2", model.OrderSideBuy, 1.1050, 500)); err != nil {
		t.Fatalf("AddOrder buy: %v", err)
	}

	if err := svc.CancelOrder(ctx, &model.CancelOrder{OrigGatewayID: "S1"}); err == nil {
		t.Fatal("expected cancel of filled order to be refused")
	}
}

func TestMarketOrderRemainderCancelled(t *testing.T) {
	svc, gw, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("S1", "ACC1", model.OrderSideSell, 1.1050, 300)); err != nil {
		t.Fatalf("AddOrder sell: %v", err)
	}

	market := addOrder("B1", "ACC2", model.OrderSideBuy, 0, 1000)
	market.Type = model.OrderTypeMarket
	market.Price = decimal.Decimal{}
	if err := svc.AddOrder(ctx, market); err != nil {
		t.Fatalf("AddOrder market: %v", err)
	}

	if got := gw.lastStatus("B1"); got != model.OrderStatusCanceled {
		t.Errorf("market order final status = %s, want %s", got, model.OrderStatusCanceled)
	}

	reports := gw.reportsFor("B1")
	var sawTrade bool
	for _, r := range reports {
		if r.ExecType == model.ExecTypeTrade && r.CumQuantity == 300 {
			sawTrade = true
		}
	}
	if !sawTrade {
		t.Error("expected a 300-lot fill before the remainder was cancelled")
	}
}

func TestEventStoreRecordsLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("C1", "ACC1", model.OrderSideBuy, 1.1050, 1000)); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}

	orderID := svc.eventstore.GetOrderID("C1")
	if orderID == "" {
		t.Fatal("gateway id not tracked")
	}

	evs := svc.eventstore.Events(orderID)
	if len(evs) == 0 {
		t.Fatal("no events recorded")
	}
	if evs[len(evs)-1].OrderStatus != model.OrderStatusNew {
		t.Errorf("last event status = %s, want %s", evs[len(evs)-1].OrderStatus, model.OrderStatusNew)
	}
}

func TestCleanerDropsTerminalOrders(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddOrder(ctx, addOrder("S1", "ACC1", model.OrderSideSell, 1.1050, 500)); err != nil {
		t.Fatalf("AddOrder sell: %v", err)
	}
	if err := svc.AddOrder(ctx, addOrder("B1", "ACC2", model.OrderSideBuy, 1.1050, 500)); err != nil {
		t.Fatalf("AddOrder buy: %v", err)
	}

	sellOrderID := svc.eventstore.GetOrderID("S1")
	svc.cleanup()

	if _, err := svc.GetOrderByOrderID(sellOrderID); err == nil {
		t.Error("filled order should be dropped by cleanup")
	}
}
