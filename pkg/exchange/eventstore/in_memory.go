package eventstore

import (
	"sync"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
)

type InMemoryEventStore struct {
	mu              sync.RWMutex
	events          map[string][]*model.OrderEvent
	orderByGateway  map[string]string // GatewayID -> OrderID
	latestGatewayID map[string]string // OrderID -> current GatewayID
	gatewayChain    map[string]string // GatewayID -> OrigGatewayID
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events:          make(map[string][]*model.OrderEvent),
		orderByGateway:  make(map[string]string),
		latestGatewayID: make(map[string]string),
		gatewayChain:    make(map[string]string),
	}
}

func (s *InMemoryEventStore) AddEvent(ev *model.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.OrderID] = append(s.events[ev.OrderID], ev)
	s.trackChainLocked(ev.OrderID, ev.GatewayID, ev.OrigGatewayID)
}

func (s *InMemoryEventStore) Events(orderID string) []*model.OrderEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evs := s.events[orderID]
	out := make([]*model.OrderEvent, len(evs))
	copy(out, evs)
	return out
}

func (s *InMemoryEventStore) TrackChain(orderID, gatewayID, origGatewayID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trackChainLocked(orderID, gatewayID, origGatewayID)
}

func (s *InMemoryEventStore) trackChainLocked(orderID, gatewayID, origGatewayID string) {
	s.latestGatewayID[orderID] = gatewayID
	s.orderByGateway[gatewayID] = orderID
	if origGatewayID != "" {
		s.gatewayChain[gatewayID] = origGatewayID
	}
}

func (s *InMemoryEventStore) GetOrderID(gatewayID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.orderByGateway[gatewayID]
}

func (s *InMemoryEventStore) GetLatestGatewayID(orderID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latestGatewayID[orderID]
}

// ReconstructChain walks backward through the gateway-id chain.
func (s *InMemoryEventStore) ReconstructChain(gatewayID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chain []string
	curr := gatewayID
	for curr != "" {
		chain = append(chain, curr)
		curr = s.gatewayChain[curr]
	}
	return chain
}

func (s *InMemoryEventStore) DeleteChainByOrderID(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gatewayID := s.latestGatewayID[orderID]
	for gatewayID != "" {
		next := s.gatewayChain[gatewayID]
		delete(s.gatewayChain, gatewayID)
		delete(s.orderByGateway, gatewayID)
		gatewayID = next
	}
	delete(s.latestGatewayID, orderID)
	delete(s.events, orderID)
}
