package fixgateway

import (
	"context"
	"testing"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/quickfixgo/quickfix"
)

func TestOnOrderReportDeliversInServiceOrder(t *testing.T) {
	g := NewGateway(&Config{})

	var sent []model.OrderStatus
	g.send = func(order model.Order, sessionID *quickfix.SessionID) error {
		sent = append(sent, order.Status)
		return nil
	}

	sessionID := quickfix.SessionID{BeginString: "FIX.4.4", SenderCompID: "EXCHANGE", TargetCompID: "TRADER1"}
	g.AddRequestToMap("C1", &sessionID)

	ctx := context.Background()
	for _, status := range []model.OrderStatus{
		model.OrderStatusNew,
		model.OrderStatusPartiallyFilled,
		model.OrderStatusFilled,
	} {
		g.OnOrderReport(ctx, model.Order{OrderID: "O1", GatewayID: "C1", Status: status})
	}

	want := []model.OrderStatus{
		model.OrderStatusNew,
		model.OrderStatusPartiallyFilled,
		model.OrderStatusFilled,
	}
	if len(sent) != len(want) {
		t.Fatalf("sent %d reports, want %d", len(sent), len(want))
	}
	for i := range want {
		if sent[i] != want[i] {
			t.Errorf("report %d = %s, want %s", i, sent[i], want[i])
		}
	}
}

func TestOnOrderReportUnknownSessionDropsReport(t *testing.T) {
	g := NewGateway(&Config{})

	var called bool
	g.send = func(order model.Order, sessionID *quickfix.SessionID) error {
		called = true
		return nil
	}

	g.OnOrderReport(context.Background(), model.Order{OrderID: "O1", GatewayID: "unknown"})
	if called {
		t.Error("report for unmapped ClOrdID must not be sent")
	}
}
