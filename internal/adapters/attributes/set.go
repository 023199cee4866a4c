// Package attributes implements an in-memory attribute source per entity.
package attributes

import (
	"maps"
	"slices"

	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
)

var _ ports.AttributeSource = (*Set)(nil)

type subscription struct {
	task     domain.TaskID
	callback ports.ChangeCallback
}

// Set holds the attribute values of one entity and notifies subscribers of writes.
// Subscribers of a key are notified in the order they first subscribed.
type Set struct {
	entity domain.EntityRef
	values map[domain.AttributeKey]float64
	subs   map[domain.AttributeKey][]subscription
}

// NewSet creates a Set for entity with the given initial values.
func NewSet(entity domain.EntityRef, initial map[domain.AttributeKey]float64) *Set {
	values := make(map[domain.AttributeKey]float64, len(initial))
	maps.Copy(values, initial)
	return &Set{
		entity: entity,
		values: values,
		subs:   make(map[domain.AttributeKey][]subscription),
	}
}

// Entity returns the owning entity.
func (s *Set) Entity() domain.EntityRef {
	return s.entity
}

// Subscribe registers callback for key on behalf of task. An existing
// subscription of the same task keeps its position and gets the new callback.
func (s *Set) Subscribe(key domain.AttributeKey, task domain.TaskID, callback ports.ChangeCallback) {
	list := s.subs[key]
	if i := indexOf(list, task); i >= 0 {
		list[i].callback = callback
		return
	}
	s.subs[key] = append(list, subscription{task: task, callback: callback})
}

// Unsubscribe removes the subscription of task for key, if any.
func (s *Set) Unsubscribe(key domain.AttributeKey, task domain.TaskID) {
	list := s.subs[key]
	i := indexOf(list, task)
	if i < 0 {
		return
	}
	list = slices.Delete(slices.Clone(list), i, i+1)
	if len(list) == 0 {
		delete(s.subs, key)
		return
	}
	s.subs[key] = list
}

// Subscribers returns the tasks subscribed to key, in notification order.
func (s *Set) Subscribers(key domain.AttributeKey) []domain.TaskID {
	list := s.subs[key]
	out := make([]domain.TaskID, len(list))
	for i, sub := range list {
		out[i] = sub.task
	}
	return out
}

// SubscriptionCount returns the number of live subscriptions across all keys.
func (s *Set) SubscriptionCount() int {
	n := 0
	for _, list := range s.subs {
		n += len(list)
	}
	return n
}

// Value returns the current value of key.
func (s *Set) Value(key domain.AttributeKey) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Values returns a copy of every attribute value.
func (s *Set) Values() map[domain.AttributeKey]float64 {
	return maps.Clone(s.values)
}

// SetValue writes key and notifies its subscribers. Every write notifies, even
// when the value did not change; filtering no-op writes is the subscriber's job.
//
// Subscribers removed while the notification is in flight are skipped, and
// subscribers added during it are not notified of this write.
func (s *Set) SetValue(key domain.AttributeKey, value float64, provenance *domain.Provenance) {
	old := s.values[key]
	s.values[key] = value

	event := domain.AttributeChangeEvent{
		Key:        key,
		OldValue:   old,
		NewValue:   value,
		Provenance: provenance,
	}

	for _, pending := range slices.Clone(s.subs[key]) {
		i := indexOf(s.subs[key], pending.task)
		if i < 0 {
			continue
		}
		s.subs[key][i].callback(event)
	}
}

// Restore replaces every value without notifying subscribers.
func (s *Set) Restore(values map[domain.AttributeKey]float64) {
	s.values = make(map[domain.AttributeKey]float64, len(values))
	maps.Copy(s.values, values)
}

func indexOf(list []subscription, task domain.TaskID) int {
	return slices.IndexFunc(list, func(sub subscription) bool {
		return sub.task == task
	})
}
