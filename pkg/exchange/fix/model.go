package fixgateway

import (
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

type NewOrderSingle struct {
	SessionID *quickfix.SessionID

	Account           string
	AccountType       enum.AccountType
	ClOrdID           string
	Symbol            string
	SecurityType      enum.SecurityType
	OrdType           enum.OrdType
	Price             decimal.Decimal
	TimeInForce       enum.TimeInForce
	Side              enum.Side
	TransactTime      time.Time
	OrderQty          decimal.Decimal
	MaturityMonthYear string
	SecurityExchange  string
}

type OrderCancelRequest struct {
	SessionID *quickfix.SessionID

	OrigClOrdID       string
	ClOrdID           string
	Account           string
	Symbol            string
	Side              enum.Side
	TransactTime      time.Time
	MaturityMonthYear string
}
