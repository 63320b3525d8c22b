package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService handles order listing, lookup and the status lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher OrderEventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves orders in insertion order, optionally filtered
// by status. The filter is an equality match on the lowercase status;
// "" and "all" return everything.
func (s *OrderService) GetAllOrders(statusFilter string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}

	filter := strings.ToLower(strings.TrimSpace(statusFilter))
	if filter == "" || filter == "all" {
		return orders, nil
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if strings.ToLower(string(order.Status)) == filter {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus moves an order to a new status. The progression is
// strictly forward; cancellation is terminal and allowed from any
// non-delivered state. Shipped/delivered timestamps are maintained with
// the transition so the status string and the dates cannot disagree.
func (s *OrderService) UpdateOrderStatus(id string, status string) (*models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return s.transition(id, next, "")
}

// transition applies the status change in a single repository update.
// The tracking number, when given, is written as part of the same
// transition so the published event always reflects the full change.
func (s *OrderService) transition(id string, next models.OrderStatus, trackingNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot transition order %s from %s to %s", id, order.Status, next)
	}

	now := time.Now()
	order.Status = next
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	switch next {
	case models.StatusShipped:
		order.ShippedDate = &now
	case models.StatusDelivered:
		if order.ShippedDate == nil {
			order.ShippedDate = &now
		}
		order.DeliveredDate = &now
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"order_id": order.ID,
			"status":   string(order.Status),
		}
		if order.TrackingNumber != "" {
			payload["tracking_number"] = order.TrackingNumber
		}
		if err := s.publisher.PublishOrderEvent(EventOrderStatusUpdated, payload); err != nil {
			log.Printf("Warning: failed to publish status update event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// MarkShipped transitions an order to shipped, recording the tracking
// number with the shipped timestamp in the same update.
func (s *OrderService) MarkShipped(id string, trackingNumber string) (*models.Order, error) {
	return s.transition(id, models.StatusShipped, trackingNumber)
}

// MarkDelivered transitions an order to delivered.
func (s *OrderService) MarkDelivered(id string) (*models.Order, error) {
	return s.UpdateOrderStatus(id, string(models.StatusDelivered))
}

// CancelOrder cancels an order. Delivered orders cannot be cancelled.
func (s *OrderService) CancelOrder(id string) (*models.Order, error) {
	return s.UpdateOrderStatus(id, string(models.StatusCancelled))
}

// Shipment progress stages shown on the order detail view.
const (
	StageNone      = 0 // nothing confirmed yet
	StageOrdered   = 1
	StageShipped   = 2
	StageDelivered = 3
)

// ProgressStage derives the 3-stage shipment progress for an order.
// Missing dates read as pending. The stage never regresses below what
// the timestamps prove even when the status string lags behind, and a
// lagging timestamp never pulls a further-along status back.
func ProgressStage(order models.Order) int {
	dateStage := StageNone
	switch {
	case order.DeliveredDate != nil:
		dateStage = StageDelivered
	case order.ShippedDate != nil:
		dateStage = StageShipped
	case !order.OrderDate.IsZero():
		dateStage = StageOrdered
	}

	statusStage := StageNone
	switch order.Status {
	case models.StatusDelivered:
		statusStage = StageDelivered
	case models.StatusShipped:
		statusStage = StageShipped
	case models.StatusPending, models.StatusProcessing:
		statusStage = StageOrdered
	}

	if statusStage > dateStage {
		return statusStage
	}
	return dateStage
}
