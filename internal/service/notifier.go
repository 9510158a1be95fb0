package service

// Realtime notification kinds
const (
	EventProductCreated     = "product_created"
	EventProductDeleted     = "product_deleted"
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
	EventOrderDeleted       = "order_deleted"
	EventEventCreated       = "event_created"
	EventEventDeleted       = "event_deleted"
	EventEventReallocated   = "event_reallocated"
)

// Notifier fans domain changes out to realtime subscribers. *ws.Hub satisfies it.
type Notifier interface {
	Publish(kind string, payload interface{})
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, interface{}) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
