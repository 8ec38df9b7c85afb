package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futuresdesk/matching-engine/pkg/exchange/eventstore"
	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/futuresdesk/matching-engine/pkg/exchange/validation"
	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/futuresdesk/matching-engine/pkg/orderbook"
	"go.uber.org/zap"
)

// Service glues the transport gateway to the matching engine: it runs the
// validation rules, keeps the gateway-id to engine-id mapping, emits order
// events and reports every state change back through the gateway.
type Service struct {
	gateway    OrderGateway
	engine     *orderbook.MatchingEngine
	eventstore eventstore.EventStore
	rules      []validation.Rule

	orderIDMapping sync.Map // OrderID -> *model.Order

	stopCh chan struct{}
}

type ServiceOption func(*Service)

func WithEventStore(es eventstore.EventStore) ServiceOption {
	return func(s *Service) { s.eventstore = es }
}

func WithRules(rules ...validation.Rule) ServiceOption {
	return func(s *Service) { s.rules = append(s.rules, rules...) }
}

func NewService(gateway OrderGateway, engine *orderbook.MatchingEngine, opts ...ServiceOption) *Service {
	s := &Service{
		gateway:    gateway,
		engine:     engine,
		eventstore: eventstore.NewInMemoryEventStore(),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Start(ctx context.Context) error {
	return s.gateway.Start(ctx)
}

func (s *Service) Stop() {
	close(s.stopCh)
}

func (s *Service) AddOrder(ctx context.Context, addOrder *model.AddOrder) error {
	if s.eventstore.GetOrderID(addOrder.GatewayID) != "" {
		return errDuplicateOrder
	}

	order := model.NewOrderFromAdd(addOrder)

	if err := validation.CheckAll(s.rules, order); err != nil {
		s.reject(ctx, order, err)
		return err
	}

	result, trades, err := s.engine.PlaceOrder(orderbook.NewOrderRequest{
		Instrument: instrument.Key{Symbol: order.Symbol, Settlement: order.Settlement},
		Side:       orderbook.Side(order.Side),
		Type:       orderbook.OrderType(order.Type),
		Price:      order.Price,
		Quantity:   order.Quantity,
		OwnerID:    order.Account,
	})
	if err != nil {
		s.reject(ctx, order, err)
		return err
	}

	order.Accept(result.ID)
	s.AddOrderToMap(order)
	s.report(ctx, order)

	s.processTrades(ctx, trades)

	// a market order's unfilled remainder comes back cancelled
	if result.Status == orderbook.StatusCancelled && order.CanCancel() {
		order.ApplyCancel(&model.CancelOrder{OrigGatewayID: order.GatewayID})
		s.report(ctx, order)
	}

	return nil
}

func (s *Service) CancelOrder(ctx context.Context, cancelOrder *model.CancelOrder) error {
	orderID := s.eventstore.GetOrderID(cancelOrder.OrigGatewayID)
	order, err := s.GetOrderByOrderID(orderID)
	if err != nil {
		return errGatewayIDNotFound
	}

	if !order.CanCancel() {
		return errInvalidOrderStatus
	}

	if err := s.engine.CancelOrder(order.OrderID); err != nil {
		zap.S().Warnf("cancel orderID=%s: %v", order.OrderID, err)
		return fmt.Errorf("cancel %s: %w", order.OrderID, err)
	}

	order.ApplyCancel(cancelOrder)
	s.report(ctx, order)

	return nil
}

// processTrades books both legs of every trade and reports them.
func (s *Service) processTrades(ctx context.Context, trades []orderbook.Trade) {
	for _, t := range trades {
		s.applyLeg(ctx, t.BuyOrderID, t)
		s.applyLeg(ctx, t.SellOrderID, t)
	}
}

func (s *Service) applyLeg(ctx context.Context, orderID string, t orderbook.Trade) {
	order, err := s.GetOrderByOrderID(orderID)
	if err != nil {
		zap.S().Warnf("trade %s references unknown orderID=%s", t.ID, orderID)
		return
	}

	order.ApplyTrade(t.Quantity, t.Price, t.ID)
	s.report(ctx, order)
}

func (s *Service) reject(ctx context.Context, order *model.Order, reason error) {
	order.ApplyReject(reason.Error())
	s.report(ctx, order)
}

// report snapshots the order, records the event and notifies the gateway.
func (s *Service) report(ctx context.Context, order *model.Order) {
	bk := *order
	s.eventstore.AddEvent(model.NewOrderEvent(bk, time.Now()))
	s.gateway.OnOrderReport(ctx, bk)
}
