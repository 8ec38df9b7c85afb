package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderEvent is the append-only record emitted for every order state
// change; it is what the persistence worker writes to the database.
type OrderEvent struct {
	EventID       string
	OrderID       string
	GatewayID     string
	OrigGatewayID string
	Symbol        string
	Settlement    string
	ExecType      OrderExecType
	OrderStatus   OrderStatus
	Qty           int64
	CumQty        int64
	LeavesQty     int64
	Price         decimal.Decimal
	ExecID        string
	Timestamp     time.Time
}

func NewOrderEvent(order Order, ts time.Time) *OrderEvent {
	return &OrderEvent{
		EventID:       NewEventID(order.OrderID, order.Status, order.ExecID),
		OrderID:       order.OrderID,
		GatewayID:     order.GatewayID,
		OrigGatewayID: order.OrigGatewayID,
		Symbol:        order.Symbol,
		Settlement:    order.Settlement,
		ExecType:      order.ExecType,
		OrderStatus:   order.Status,
		Qty:           order.Quantity,
		CumQty:        order.CumQuantity,
		LeavesQty:     order.LeavesQuantity,
		Price:         order.Price,
		ExecID:        order.ExecID,
		Timestamp:     ts,
	}
}

func NewEventID(orderID string, status OrderStatus, execID string) string {
	if execID != "" {
		return fmt.Sprintf("%s-%s-%s", orderID, status, execID)
	}
	return fmt.Sprintf("%s-%s", orderID, status)
}

func (OrderEvent) TableName() string { return "order_events" }
