package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/futuresdesk/matching-engine/pkg/exchange/repo"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Worker drains the order event stream into the database.
type Worker struct {
	orderEvent repo.IOrderEvent
	trade      repo.ITrade
}

func NewWorker(repo repo.IRepo) *Worker {
	return &Worker{
		orderEvent: repo.OrderEvent(),
		trade:      repo.Trade(),
	}
}

func (w *Worker) StartConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := cons.Fetch(10, nats.Context(ctx))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			if !errors.Is(err, nats.ErrTimeout) {
				zap.S().Warnf("fetch err=%v", err)
			}
			continue
		}

		for _, msg := range msgs {
			var ev model.OrderEvent
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				zap.S().Warnf("unmarshal err=%v", err)
				_ = msg.Ack()
				continue
			}
			if err := w.handleEvent(ctx, ev); err != nil {
				zap.S().Warnf("handleEvent eventID=%s err=%v", ev.EventID, err)
				continue
			}
			_ = msg.Ack()
		}
	}
}

func (w *Worker) handleEvent(ctx context.Context, ev model.OrderEvent) error {
	_, err := w.orderEvent.Create(ctx, &ev)
	return err
}

// HandleTradeBatch persists a batch of executed trades; it is the kafka
// consumer callback.
func (w *Worker) HandleTradeBatch(ctx context.Context, payloads [][]byte) error {
	records := make([]*repo.TradeRecord, 0, len(payloads))
	for _, p := range payloads {
		var rec repo.TradeRecord
		if err := json.Unmarshal(p, &rec); err != nil {
			zap.S().Warnf("unmarshal trade err=%v", err)
			continue
		}
		records = append(records, &rec)
	}
	if len(records) == 0 {
		return nil
	}
	_, err := w.trade.BulkCreate(ctx, records)
	return err
}
