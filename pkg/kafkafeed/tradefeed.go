package kafkafeed

import (
	"context"

	"github.com/futuresdesk/matching-engine/pkg/exchange/repo"
	"github.com/futuresdesk/matching-engine/pkg/orderbook"
	"go.uber.org/zap"
)

// TradeFeed pushes executed trades onto a Kafka topic. It is wired as a
// trade callback on the matching engine; trades for one instrument share
// a partition key so downstream consumers see them in order.
type TradeFeed struct {
	producer *Producer
	topic    string
}

func NewTradeFeed(producer *Producer, topic string) *TradeFeed {
	return &TradeFeed{
		producer: producer,
		topic:    topic,
	}
}

func (f *TradeFeed) PublishTrades(trades []orderbook.Trade) {
	ctx := context.Background()
	for _, t := range trades {
		rec := repo.NewTradeRecord(t)
		key := t.Instrument.String()
		if err := f.producer.PublishJSON(ctx, f.topic, key, rec, nil); err != nil {
			zap.S().Warnf("publish trade %s: %v", t.ID, err)
		}
	}
}

func (f *TradeFeed) Close(ctx context.Context) error {
	return f.producer.Close(ctx)
}
