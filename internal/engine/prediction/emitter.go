package prediction

import (
	"slices"

	"go.trai.ch/rewind/internal/core/domain"
)

// ChangeListener receives the broadcast of a qualifying attribute change.
type ChangeListener func(key domain.AttributeKey, oldValue, newValue float64)

// ListenerID identifies a registered listener.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn ChangeListener
}

// emitter delivers broadcasts to listeners in registration order.
type emitter struct {
	next      ListenerID
	listeners []listenerEntry
}

func (e *emitter) add(fn ChangeListener) ListenerID {
	e.next++
	e.listeners = append(e.listeners, listenerEntry{id: e.next, fn: fn})
	return e.next
}

func (e *emitter) remove(id ListenerID) {
	e.listeners = slices.DeleteFunc(e.listeners, func(l listenerEntry) bool {
		return l.id == id
	})
}

func (e *emitter) broadcast(key domain.AttributeKey, oldValue, newValue float64) {
	// Listeners may unregister themselves while being called.
	for _, l := range slices.Clone(e.listeners) {
		l.fn(key, oldValue, newValue)
	}
}
