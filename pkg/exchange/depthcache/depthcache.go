// Package depthcache periodically snapshots book depth into redis so the
// web front end can read it without touching the matching engine.
package depthcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/futuresdesk/matching-engine/pkg/instrument"
	"github.com/futuresdesk/matching-engine/pkg/orderbook"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "depth:"

type Snapshot struct {
	Symbol     string                 `json:"symbol"`
	Settlement string                 `json:"settlement"`
	Bids       []orderbook.PriceLevel `json:"bids"`
	Asks       []orderbook.PriceLevel `json:"asks"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type Writer struct {
	client  *redis.Client
	engine  *orderbook.MatchingEngine
	catalog *instrument.Catalog
	ttl     time.Duration
}

func NewWriter(client *redis.Client, engine *orderbook.MatchingEngine, catalog *instrument.Catalog, ttl time.Duration) *Writer {
	return &Writer{
		client:  client,
		engine:  engine,
		catalog: catalog,
		ttl:     ttl,
	}
}

// Run publishes a snapshot per registered instrument every interval until
// the context is cancelled.
func (w *Writer) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.publishAll(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Writer) publishAll(ctx context.Context) {
	for _, key := range w.catalog.Keys() {
		if err := w.Publish(ctx, key); err != nil {
			zap.S().Warnf("publish depth %s: %v", key, err)
		}
	}
}

func (w *Writer) Publish(ctx context.Context, key instrument.Key) error {
	depth := w.engine.GetOrderBook(key)
	snap := Snapshot{
		Symbol:     key.Symbol,
		Settlement: key.Settlement,
		Bids:       depth.Bids,
		Asks:       depth.Asks,
		UpdatedAt:  time.Now(),
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return w.client.Set(ctx, keyPrefix+key.String(), b, w.ttl).Err()
}

// Read returns the cached snapshot for one instrument.
func Read(ctx context.Context, client *redis.Client, key instrument.Key) (*Snapshot, error) {
	b, err := client.Get(ctx, keyPrefix+key.String()).Bytes()
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
