package eventstore

import (
	"encoding/json"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// JetStreamEventStore keeps the in-memory view for lookups and publishes
// every event to a JetStream subject for the persistence worker.
type JetStreamEventStore struct {
	*InMemoryEventStore

	js      nats.JetStreamContext
	subject string
}

func NewJetStreamEventStore(js nats.JetStreamContext, stream, subject string) (*JetStreamEventStore, error) {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{subject},
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		return nil, err
	}

	return &JetStreamEventStore{
		InMemoryEventStore: NewInMemoryEventStore(),
		js:                 js,
		subject:            subject,
	}, nil
}

func (s *JetStreamEventStore) AddEvent(ev *model.OrderEvent) {
	s.InMemoryEventStore.AddEvent(ev)

	data, err := json.Marshal(ev)
	if err != nil {
		zap.S().Warnf("marshal order event %s: %v", ev.EventID, err)
		return
	}
	if _, err := s.js.PublishAsync(s.subject, data); err != nil {
		zap.S().Warnf("publish order event %s: %v", ev.EventID, err)
	}
}
