package fixgateway

import (
	"context"
	"sync"

	"github.com/futuresdesk/matching-engine/pkg/exchange"
	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"go.uber.org/zap"
)

// Gateway is the FIX acceptor side of the exchange. It translates
// NewOrderSingle/OrderCancelRequest into service calls and turns order
// reports back into execution reports on the originating session.
type Gateway struct {
	cfg     *Config
	app     *Application
	service exchange.IService
	send    func(order model.Order, sessionID *quickfix.SessionID) error

	requestMapping sync.Map // ClOrdID -> *quickfix.SessionID
}

type Config struct {
	ConfigFilepath string
}

func NewGateway(cfg *Config) *Gateway {
	return &Gateway{
		cfg:  cfg,
		send: orderReportToExecutionReport,
	}
}

func (g *Gateway) AddServiceInstance(s exchange.IService) {
	g.service = s
}

func (g *Gateway) Start(ctx context.Context) error {
	app, err := startApp(g.cfg.ConfigFilepath, g)
	if err != nil {
		zap.S().Errorf("start fix app err=%v", err)
		return err
	}
	g.app = app
	return nil
}

func (g *Gateway) Stop() {
	if g.app != nil {
		stopApp(g.app)
	}
}

func (g *Gateway) AddOrder(ctx context.Context, newOrderSingle *NewOrderSingle) {
	orderType := map[enum.OrdType]model.OrderType{
		enum.OrdType_LIMIT:  model.OrderTypeLimit,
		enum.OrdType_MARKET: model.OrderTypeMarket,
	}[newOrderSingle.OrdType]

	side := map[enum.Side]model.OrderSide{
		enum.Side_BUY:  model.OrderSideBuy,
		enum.Side_SELL: model.OrderSideSell,
	}[newOrderSingle.Side]

	g.AddRequestToMap(newOrderSingle.ClOrdID, newOrderSingle.SessionID)

	if err := g.service.AddOrder(ctx, &model.AddOrder{
		GatewayID:    newOrderSingle.ClOrdID,
		Account:      newOrderSingle.Account,
		Symbol:       newOrderSingle.Symbol,
		Settlement:   newOrderSingle.MaturityMonthYear,
		Exchange:     newOrderSingle.SecurityExchange,
		Type:         orderType,
		Price:        newOrderSingle.Price,
		Side:         side,
		TransactTime: newOrderSingle.TransactTime,
		Quantity:     newOrderSingle.OrderQty.IntPart(),
	}); err != nil {
		zap.S().Warnf("add order ClOrdID=%s err=%v", newOrderSingle.ClOrdID, err)
	}
}

func (g *Gateway) CancelOrder(ctx context.Context, orderCancelRequest *OrderCancelRequest) {
	g.AddRequestToMap(orderCancelRequest.ClOrdID, orderCancelRequest.SessionID)

	if err := g.service.CancelOrder(ctx, &model.CancelOrder{
		GatewayID:     orderCancelRequest.ClOrdID,
		OrigGatewayID: orderCancelRequest.OrigClOrdID,
	}); err != nil {
		zap.S().Warnf("cancel order OrigClOrdID=%s err=%v", orderCancelRequest.OrigClOrdID, err)
	}
}

// OnOrderReport sends synchronously so one order's execution reports reach
// the session in the sequence the service produced them.
func (g *Gateway) OnOrderReport(ctx context.Context, order model.Order) {
	sessionID, err := g.GetSessionByClOrdID(order.GatewayID)
	if err != nil {
		zap.S().Warnf("session for ClOrdID=%s not found", order.GatewayID)
		return
	}

	if err := g.send(order, sessionID); err != nil {
		zap.S().Warnf("send execution report OrderID=%s err=%v", order.OrderID, err)
	}
}
