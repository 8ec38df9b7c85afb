package eventstore

import "github.com/futuresdesk/matching-engine/pkg/exchange/model"

// EventStore keeps the order event history and the gateway-id chain that
// links client order ids to engine order ids.
type EventStore interface {
	AddEvent(ev *model.OrderEvent)
	Events(orderID string) []*model.OrderEvent
	GetOrderID(gatewayID string) string
	GetLatestGatewayID(orderID string) string
	TrackChain(orderID, gatewayID, origGatewayID string)
	ReconstructChain(gatewayID string) []string
	DeleteChainByOrderID(orderID string)
}
