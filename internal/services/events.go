package services

// OrderEventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; services tolerate a nil publisher and publish
// failures are logged, never surfaced to the user.
type OrderEventPublisher interface {
	PublishOrderEvent(event string, payload map[string]interface{}) error
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)
