package service

import (
	"sync"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
)

const subscriberBuffer = 16

// eventHub fans session events out to the subscribers of each player table.
// Publishing never blocks: a subscriber whose buffer is full misses the event.
type eventHub struct {
	subs map[uuid.UUID]map[chan game.Event]struct{}
	sync.Mutex
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[uuid.UUID]map[chan game.Event]struct{})}
}

// subscribe registers a new subscriber for playerID.
func (h *eventHub) subscribe(playerID uuid.UUID) (<-chan game.Event, func()) {
	h.Lock()
	defer h.Unlock()

	ch := make(chan game.Event, subscriberBuffer)
	if h.subs[playerID] == nil {
		h.subs[playerID] = make(map[chan game.Event]struct{})
	}
	h.subs[playerID][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.remove(playerID, ch) })
	}
	return ch, cancel
}

func (h *eventHub) remove(playerID uuid.UUID, ch chan game.Event) {
	h.Lock()
	defer h.Unlock()

	subs, ok := h.subs[playerID]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(h.subs, playerID)
	}
}

// publish delivers e to every subscriber of playerID and returns how many missed it.
func (h *eventHub) publish(playerID uuid.UUID, e game.Event) (dropped int) {
	h.Lock()
	defer h.Unlock()

	for ch := range h.subs[playerID] {
		select {
		case ch <- e:
		default:
			dropped++
		}
	}
	return dropped
}

// closeAll ends every subscription of playerID.
func (h *eventHub) closeAll(playerID uuid.UUID) {
	h.Lock()
	defer h.Unlock()

	for ch := range h.subs[playerID] {
		close(ch)
	}
	delete(h.subs, playerID)
}
