package service

import (
	"sync"

	"github.com/afkar-io/afkar-api/internal/dto"
)

const deliveryBufferSize = 16

// deliveryHub routes notifications to the in-process SSE subscribers of a
// single node. It is safe for concurrent use.
type deliveryHub struct {
	mu       sync.RWMutex
	channels map[uint]map[chan dto.NotificationResponse]struct{}
}

func newDeliveryHub() *deliveryHub {
	return &deliveryHub{
		channels: make(map[uint]map[chan dto.NotificationResponse]struct{}),
	}
}

func (h *deliveryHub) attach(userID uint) chan dto.NotificationResponse {
	ch := make(chan dto.NotificationResponse, deliveryBufferSize)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.channels[userID]; !ok {
		h.channels[userID] = make(map[chan dto.NotificationResponse]struct{})
	}
	h.channels[userID][ch] = struct{}{}

	return ch
}

func (h *deliveryHub) detach(userID uint, ch chan dto.NotificationResponse) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.channels[userID]
	if !ok {
		return
	}
	if _, ok := subscribers[ch]; !ok {
		return
	}

	delete(subscribers, ch)
	close(ch)
	if len(subscribers) == 0 {
		delete(h.channels, userID)
	}
}

// deliver fans a notification out to the recipient's open streams. Slow
// subscribers are skipped rather than blocking the publisher.
func (h *deliveryHub) deliver(userID uint, notification dto.NotificationResponse) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.channels[userID] {
		select {
		case ch <- notification:
		default:
		}
	}
}
