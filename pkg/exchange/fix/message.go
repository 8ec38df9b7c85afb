package fixgateway

import (
	"sync"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	orderStatusMapping = map[model.OrderStatus]enum.OrdStatus{
		model.OrderStatusPendingNew:      enum.OrdStatus_PENDING_NEW,
		model.OrderStatusNew:             enum.OrdStatus_NEW,
		model.OrderStatusPartiallyFilled: enum.OrdStatus_PARTIALLY_FILLED,
		model.OrderStatusFilled:          enum.OrdStatus_FILLED,
		model.OrderStatusCanceled:        enum.OrdStatus_CANCELED,
		model.OrderStatusRejected:        enum.OrdStatus_REJECTED,
	}

	execTypeMapping = map[model.OrderExecType]enum.ExecType{
		model.ExecTypePendingNew: enum.ExecType_PENDING_NEW,
		model.ExecTypeNew:        enum.ExecType_NEW,
		model.ExecTypeTrade:      enum.ExecType_TRADE,
		model.ExecTypeCanceled:   enum.ExecType_CANCELED,
		model.ExecTypeRejected:   enum.ExecType_REJECTED,
	}

	sideMapping = map[model.OrderSide]enum.Side{
		model.OrderSideBuy:  enum.Side_BUY,
		model.OrderSideSell: enum.Side_SELL,
	}
)

// MessagePool recycles quickfix messages between execution reports.
type MessagePool struct {
	pool sync.Pool
}

func NewMessagePool() *MessagePool {
	return &MessagePool{
		pool: sync.Pool{
			New: func() interface{} {
				m := quickfix.NewMessage()
				resetMessage(m)
				return m
			},
		},
	}
}

func (mp *MessagePool) Get() *quickfix.Message {
	m := mp.pool.Get().(*quickfix.Message)
	resetMessage(m)
	return m
}

func (mp *MessagePool) Put(m *quickfix.Message) {
	resetMessage(m)
	mp.pool.Put(m)
}

func resetMessage(m *quickfix.Message) {
	m.Header.Init()
	m.Body.Init()
	m.Trailer.Init()
	m.Header.Clear()
	m.Body.Clear()
	m.Trailer.Clear()
}

var execReportPool = NewMessagePool()

func buildExecutionReport(order model.Order, msg *quickfix.Message) executionreport.ExecutionReport {
	execReportMsg := executionreport.FromMessage(msg)

	execReportMsg.SetMsgType(enum.MsgType_EXECUTION_REPORT)
	execReportMsg.SetOrderID(order.OrderID)
	execReportMsg.SetExecID(order.ExecID)
	execReportMsg.SetExecType(execTypeMapping[order.ExecType])
	execReportMsg.SetOrdStatus(orderStatusMapping[order.Status])
	execReportMsg.SetSide(sideMapping[order.Side])
	execReportMsg.SetLeavesQty(decimal.NewFromInt(order.LeavesQuantity), 0)
	execReportMsg.SetCumQty(decimal.NewFromInt(order.CumQuantity), 0)

	execReportMsg.SetClOrdID(order.GatewayID)
	if order.OrigGatewayID != "" {
		execReportMsg.SetOrigClOrdID(order.OrigGatewayID)
	}
	execReportMsg.SetAccount(order.Account)
	execReportMsg.SetSymbol(order.Symbol)
	execReportMsg.SetMaturityMonthYear(order.Settlement)
	execReportMsg.SetOrderQty(decimal.NewFromInt(order.Quantity), 0)
	execReportMsg.SetPrice(order.Price, 2)
	execReportMsg.SetTransactTime(order.TransactTime)
	execReportMsg.SetLastQty(decimal.NewFromInt(order.LastQuantity), 0)
	execReportMsg.SetLastPx(order.LastPrice, 2)
	if order.Text != "" {
		execReportMsg.SetText(order.Text)
	}

	return execReportMsg
}

func orderReportToExecutionReport(order model.Order, sessionID *quickfix.SessionID) error {
	msg := execReportPool.Get()
	defer execReportPool.Put(msg)

	execReportMsg := buildExecutionReport(order, msg)

	err := quickfix.SendToTarget(execReportMsg, *sessionID)
	if err != nil {
		zap.S().Warnf("send err=%v", err)
		return err
	}

	return nil
}
