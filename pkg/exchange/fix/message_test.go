package fixgateway

import (
	"testing"
	"time"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"
)

var testOrder = model.Order{
	OrderID:        "O1",
	GatewayID:      "C1",
	OrigGatewayID:  "C0",
	Account:        "ACC1",
	Symbol:         "EURUSD",
	Settlement:     "202609",
	Side:           model.OrderSideBuy,
	Type:           model.OrderTypeLimit,
	Price:          decimal.NewFromFloat(1.1050),
	Quantity:       100,
	CumQuantity:    40,
	LeavesQuantity: 60,
	LastQuantity:   40,
	LastPrice:      decimal.NewFromFloat(1.1050),
	Status:         model.OrderStatusPartiallyFilled,
	ExecType:       model.ExecTypeTrade,
	ExecID:         "E1",
	TransactTime:   time.Now(),
}

func TestBuildExecutionReportFields(t *testing.T) {
	msg := execReportPool.Get()
	defer execReportPool.Put(msg)

	er := buildExecutionReport(testOrder, msg)

	ordStatus, err := er.GetOrdStatus()
	if err != nil {
		t.Fatalf("get OrdStatus: %v", err)
	}
	if ordStatus != enum.OrdStatus_PARTIALLY_FILLED {
		t.Errorf("OrdStatus = %v, want %v", ordStatus, enum.OrdStatus_PARTIALLY_FILLED)
	}

	execType, err := er.GetExecType()
	if err != nil {
		t.Fatalf("get ExecType: %v", err)
	}
	if execType != enum.ExecType_TRADE {
		t.Errorf("ExecType = %v, want %v", execType, enum.ExecType_TRADE)
	}

	clOrdID, err := er.GetClOrdID()
	if err != nil {
		t.Fatalf("get ClOrdID: %v", err)
	}
	if clOrdID != "C1" {
		t.Errorf("ClOrdID = %q, want %q", clOrdID, "C1")
	}

	leaves, err := er.GetLeavesQty()
	if err != nil {
		t.Fatalf("get LeavesQty: %v", err)
	}
	if !leaves.Equal(decimal.NewFromInt(60)) {
		t.Errorf("LeavesQty = %s, want 60", leaves)
	}
}

func TestBuildExecutionReportReusedMessageHasNoStaleFields(t *testing.T) {
	msg := execReportPool.Get()
	rejected := testOrder
	rejected.Status = model.OrderStatusRejected
	rejected.ExecType = model.ExecTypeRejected
	rejected.Text = "unknown instrument"
	buildExecutionReport(rejected, msg)
	execReportPool.Put(msg)

	msg = execReportPool.Get()
	defer execReportPool.Put(msg)
	er := buildExecutionReport(testOrder, msg)

	if text, err := er.GetText(); err == nil && text != "" {
		t.Errorf("Text = %q, want empty after pool reuse", text)
	}
}

func TestSendErrorStillRecyclesMessage(t *testing.T) {
	// no session is registered, so SendToTarget must fail
	sessionID := quickfix.SessionID{BeginString: "FIX.4.4", SenderCompID: "NOBODY", TargetCompID: "NOWHERE"}
	if err := orderReportToExecutionReport(testOrder, &sessionID); err == nil {
		t.Fatal("expected send to an unregistered session to fail")
	}

	// the message went back to the pool and the next Get is clean
	msg := execReportPool.Get()
	defer execReportPool.Put(msg)
	er := buildExecutionReport(testOrder, msg)
	clOrdID, err := er.GetClOrdID()
	if err != nil {
		t.Fatalf("get ClOrdID: %v", err)
	}
	if clOrdID != testOrder.GatewayID {
		t.Errorf("ClOrdID = %q, want %q", clOrdID, testOrder.GatewayID)
	}
}

func orderReportToExecutionReportNoPool(order model.Order) quickfix.Messagable {
	execReportMsg := executionreport.New(
		field.NewOrderID(order.OrderID),
		field.NewExecID(order.ExecID),
		field.NewExecType(execTypeMapping[order.ExecType]),
		field.NewOrdStatus(orderStatusMapping[order.Status]),
		field.NewSide(sideMapping[order.Side]),
		field.NewLeavesQty(decimal.NewFromInt(order.LeavesQuantity), 0),
		field.NewCumQty(decimal.NewFromInt(order.CumQuantity), 0),
		field.NewAvgPx(order.LastPrice, 2),
	)
	execReportMsg.SetClOrdID(order.GatewayID)
	execReportMsg.SetOrigClOrdID(order.OrigGatewayID)
	execReportMsg.SetAccount(order.Account)
	execReportMsg.SetOrderQty(decimal.NewFromInt(order.Quantity), 0)
	execReportMsg.SetPrice(order.Price, 2)
	execReportMsg.SetTransactTime(order.TransactTime)
	return execReportMsg
}

func BenchmarkExecReportNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = orderReportToExecutionReportNoPool(testOrder)
	}
}

func BenchmarkExecReportPool(b *testing.B) {
	for i := 0; i < b.N; i++ {
		msg := execReportPool.Get()
		_ = buildExecutionReport(testOrder, msg)
		execReportPool.Put(msg)
	}
}
