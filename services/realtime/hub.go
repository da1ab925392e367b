package realtime

import (
	"sync"

	shipmentModel "swiftship-backend/models/shipment"
)

// Update is pushed to subscribers whenever a tracking event is recorded.
// It is a hint, not the source of truth: clients re-fetch over the REST
// tracking endpoint on (re)connect, and a missed push is not replayed.
type Update struct {
	TrackingNumber string                      `json:"tracking_number"`
	Shipment       shipmentModel.Shipment      `json:"shipment"`
	Event          shipmentModel.ShipmentEvent `json:"event"`
}

const subscriberBuffer = 8

// Hub fans tracking updates out to websocket subscribers, keyed by
// tracking number. Publishing never blocks; a subscriber whose buffer is
// full simply misses the update.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Update]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Update]struct{}),
	}
}

// Subscribe registers interest in one tracking number and returns the
// channel updates arrive on. The caller must Unsubscribe when done.
func (h *Hub) Subscribe(trackingNumber string) chan Update {
	ch := make(chan Update, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[trackingNumber] == nil {
		h.subscribers[trackingNumber] = make(map[chan Update]struct{})
	}
	h.subscribers[trackingNumber][ch] = struct{}{}

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(trackingNumber string, ch chan Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[trackingNumber]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}

	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(h.subscribers, trackingNumber)
	}
}

// Publish delivers an update to every subscriber of its tracking number.
func (h *Hub) Publish(update Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[update.TrackingNumber] {
		select {
		case ch <- update:
		default:
			// Subscriber is not keeping up; it will resync on re-fetch.
		}
	}
}

// SubscriberCount reports how many sockets are watching a tracking number.
func (h *Hub) SubscriberCount(trackingNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[trackingNumber])
}
