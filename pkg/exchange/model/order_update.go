package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddOrder struct {
	GatewayID    string
	Account      string
	Symbol       string
	Settlement   string
	Exchange     string
	Type         OrderType
	Price        decimal.Decimal
	Side         OrderSide
	Quantity     int64
	TransactTime time.Time
}

type CancelOrder struct {
	GatewayID     string
	OrigGatewayID string
}
