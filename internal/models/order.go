package models

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the forward-progressing statuses. Cancelled sits
// outside the progression and is handled separately.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// ParseOrderStatus normalizes a status string. Returns false for
// anything outside the known set.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statusRank[status]; ok {
		return status, true
	}
	if status == StatusCancelled {
		return status, true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to next is legal. The
// progression is strictly forward (pending -> processing -> shipped ->
// delivered); cancellation is terminal and allowed from any
// non-delivered state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == StatusCancelled {
		return false
	}
	if next == StatusCancelled {
		return s != StatusDelivered
	}
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to > from
}

// OrderItem is a snapshot of a product at purchase time. Prices are
// copied, not referenced, so later catalog changes never drift into
// past orders.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"` // price at the time of order
	Quantity  int     `json:"quantity"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentMethod describes how an order was paid, without holding any
// real payment credentials.
type PaymentMethod struct {
	Type    string `json:"type"` // e.g. "credit_card"
	Details string `json:"details"`
}

// Order represents a placed customer order.
//
// Invariants: ShippedDate set implies status shipped or delivered;
// DeliveredDate set implies status delivered.
type Order struct {
	ID              string          `json:"id"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Tax             float64         `json:"tax"`
	TotalAmount     float64         `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	OrderDate       time.Time       `json:"order_date"`
	ShippedDate     *time.Time      `json:"shipped_date,omitempty"`
	DeliveredDate   *time.Time      `json:"delivered_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemsTotal recomputes the subtotal from the item snapshots.
func (o Order) ItemsTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
