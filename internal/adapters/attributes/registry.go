package attributes

import (
	"maps"
	"slices"

	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceResolver = (*Registry)(nil)

// Registry maps entities to their attribute sets.
type Registry struct {
	sets map[domain.EntityRef]*Set
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[domain.EntityRef]*Set)}
}

// Add registers a new entity with its initial values.
func (r *Registry) Add(entity domain.EntityRef, initial map[domain.AttributeKey]float64) (*Set, error) {
	if entity.IsZero() {
		return nil, zerr.With(domain.ErrUnknownEntity, "entity", entity)
	}
	if _, ok := r.sets[entity]; ok {
		return nil, zerr.With(domain.ErrDuplicateEntity, "entity", entity)
	}
	set := NewSet(entity, initial)
	r.sets[entity] = set
	return set, nil
}

// Resolve returns the attribute source of entity.
func (r *Registry) Resolve(entity domain.EntityRef) (ports.AttributeSource, bool) {
	set, ok := r.sets[entity]
	if !ok {
		return nil, false
	}
	return set, true
}

// Set returns the concrete attribute set of entity.
func (r *Registry) Set(entity domain.EntityRef) (*Set, bool) {
	set, ok := r.sets[entity]
	return set, ok
}

// Entities returns every registered entity in sorted order.
func (r *Registry) Entities() []domain.EntityRef {
	return slices.Sorted(maps.Keys(r.sets))
}

// Snapshot copies the values of every entity.
func (r *Registry) Snapshot() map[domain.EntityRef]map[domain.AttributeKey]float64 {
	out := make(map[domain.EntityRef]map[domain.AttributeKey]float64, len(r.sets))
	for entity, set := range r.sets {
		out[entity] = set.Values()
	}
	return out
}

// Restore resets entity values from a snapshot without notifying subscribers.
// Entities missing from the snapshot keep their values.
func (r *Registry) Restore(snapshot map[domain.EntityRef]map[domain.AttributeKey]float64) {
	for entity, values := range snapshot {
		if set, ok := r.sets[entity]; ok {
			set.Restore(values)
		}
	}
}

// SubscriptionCount returns the number of live subscriptions across all entities.
func (r *Registry) SubscriptionCount() int {
	n := 0
	for _, set := range r.sets {
		n += set.SubscriptionCount()
	}
	return n
}
