package api

import (
	"sync"

	"github.com/battlesnakeio/snake/rules"
)

// subscriberBuffer is how many frames a slow spectator may fall behind
// before frames are dropped for it.
const subscriberBuffer = 16

// hub fans frames out to websocket subscribers.
type hub struct {
	sync.RWMutex
	subs map[chan *rules.Frame]struct{}
}

func newHub() *hub {
	return &hub{subs: map[chan *rules.Frame]struct{}{}}
}

func (h *hub) subscribe() chan *rules.Frame {
	h.Lock()
	defer h.Unlock()

	c := make(chan *rules.Frame, subscriberBuffer)
	h.subs[c] = struct{}{}
	return c
}

func (h *hub) unsubscribe(c chan *rules.Frame) {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.subs[c]; ok {
		delete(h.subs, c)
		close(c)
	}
}

func (h *hub) broadcast(f *rules.Frame) {
	h.RLock()
	defer h.RUnlock()

	for c := range h.subs {
		select {
		case c <- f:
		default:
		}
	}
}

func (h *hub) count() int {
	h.RLock()
	defer h.RUnlock()

	return len(h.subs)
}

func (h *hub) closeAll() {
	h.Lock()
	defer h.Unlock()

	for c := range h.subs {
		delete(h.subs, c)
		close(c)
	}
}
