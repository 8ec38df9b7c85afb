package exchange

import (
	"time"

	"github.com/futuresdesk/matching-engine/pkg/exchange/model"
)

func (s *Service) AddOrderToMap(order *model.Order) {
	s.orderIDMapping.Store(order.OrderID, order)
}

func (s *Service) GetOrderByOrderID(orderID string) (*model.Order, error) {
	v, ok := s.orderIDMapping.Load(orderID)
	if !ok {
		return nil, errOrderIDNotFound
	}
	return v.(*model.Order), nil
}

func (s *Service) DeleteOrderByOrderID(orderID string) {
	s.orderIDMapping.Delete(orderID)
}

// StartCleaner periodically drops terminal orders from the mapping and
// their chains from the event store.
func (s *Service) StartCleaner(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.cleanup()
			case <-s.stopCh:
				return
			}
		}
	}()
}

func (s *Service) cleanup() {
	s.orderIDMapping.Range(func(_, v any) bool {
		order := v.(*model.Order)
		if order.IsEnd() {
			s.DeleteOrderByOrderID(order.OrderID)
			s.eventstore.DeleteChainByOrderID(order.OrderID)
		}
		return true
	})
}
