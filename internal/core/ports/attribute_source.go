// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/rewind/internal/core/domain"

// ChangeCallback receives attribute change notifications for one subscription.
type ChangeCallback func(event domain.AttributeChangeEvent)

// AttributeSource owns per-attribute change notification streams for one entity.
//
// Subscriptions are keyed by (attribute key, task ID). Subscribing an existing
// pair replaces its callback instead of adding a second one, and unsubscribing a
// pair that is not subscribed is a no-op.
//
//go:generate go run go.uber.org/mock/mockgen -source=attribute_source.go -destination=mocks/mock_attribute_source.go -package=mocks
type AttributeSource interface {
	// Subscribe registers callback for changes of key on behalf of task.
	Subscribe(key domain.AttributeKey, task domain.TaskID, callback ChangeCallback)
	// Unsubscribe removes the subscription of task for key.
	Unsubscribe(key domain.AttributeKey, task domain.TaskID)
}

// SourceResolver maps entities to their attribute sources.
type SourceResolver interface {
	// Resolve returns the attribute source of entity, or false if it has none.
	Resolve(entity domain.EntityRef) (AttributeSource, bool)
}
