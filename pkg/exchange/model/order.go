package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPendingNew      OrderStatus = "PendingNew"
	OrderStatusNew             OrderStatus = "New"
	OrderStatusPartiallyFilled OrderStatus = "PartiallyFilled"
	OrderStatusFilled          OrderStatus = "Filled"
	OrderStatusCanceled        OrderStatus = "Canceled"
	OrderStatusRejected        OrderStatus = "Rejected"
)

type OrderExecType string

const (
	ExecTypePendingNew OrderExecType = "PendingNew"
	ExecTypeNew        OrderExecType = "New"
	ExecTypeTrade      OrderExecType = "Trade"
	ExecTypeCanceled   OrderExecType = "Canceled"
	ExecTypeRejected   OrderExecType = "Rejected"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

// Order is the service-level view of one client order: gateway identity,
// engine identity and FIX-style fill accounting.
type Order struct {
	OrderID       string
	GatewayID     string // client order id assigned by the gateway
	OrigGatewayID string

	Account    string
	Symbol     string
	Settlement string
	Exchange   string
	Side       OrderSide
	Type       OrderType
	Price      decimal.Decimal
	Quantity   int64

	CumQuantity    int64
	LeavesQuantity int64
	LastQuantity   int64
	LastPrice      decimal.Decimal

	Status   OrderStatus
	ExecType OrderExecType
	ExecID   string
	Text     string

	TransactTime time.Time
}

func NewOrderFromAdd(add *AddOrder) *Order {
	return &Order{
		GatewayID:      add.GatewayID,
		Account:        add.Account,
		Symbol:         add.Symbol,
		Settlement:     add.Settlement,
		Exchange:       add.Exchange,
		Side:           add.Side,
		Type:           add.Type,
		Price:          add.Price,
		Quantity:       add.Quantity,
		LeavesQuantity: add.Quantity,
		Status:         OrderStatusPendingNew,
		ExecType:       ExecTypePendingNew,
		TransactTime:   add.TransactTime,
	}
}

func (o *Order) CanCancel() bool {
	switch o.Status {
	case OrderStatusFilled, OrderStatusCanceled, OrderStatusRejected:
		return false
	}
	return true
}

func (o *Order) IsEnd() bool {
	return !o.CanCancel()
}

// Accept moves a booked order from PendingNew to New.
func (o *Order) Accept(orderID string) {
	o.OrderID = orderID
	o.Status = OrderStatusNew
	o.ExecType = ExecTypeNew
}

// ApplyTrade books one execution against the order.
func (o *Order) ApplyTrade(qty int64, price decimal.Decimal, execID string) {
	o.CumQuantity += qty
	o.LeavesQuantity = o.Quantity - o.CumQuantity
	o.LastQuantity = qty
	o.LastPrice = price
	o.ExecID = execID
	o.ExecType = ExecTypeTrade
	if o.LeavesQuantity == 0 {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartiallyFilled
	}
}

// ApplyCancel terminates the unfilled remainder.
func (o *Order) ApplyCancel(cancel *CancelOrder) {
	o.OrigGatewayID = cancel.OrigGatewayID
	if cancel.GatewayID != "" {
		o.GatewayID = cancel.GatewayID
	}
	o.LeavesQuantity = 0
	o.Status = OrderStatusCanceled
	o.ExecType = ExecTypeCanceled
}

// ApplyReject marks the order rejected before it touched the book.
func (o *Order) ApplyReject(reason string) {
	o.LeavesQuantity = 0
	o.Status = OrderStatusRejected
	o.ExecType = ExecTypeRejected
	o.Text = reason
}
