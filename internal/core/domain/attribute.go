package domain

// AttributeKey names one tracked quantity on an entity, such as Health.
type AttributeKey string

// String returns the attribute name.
func (k AttributeKey) String() string {
	return string(k)
}

// EntityRef identifies an entity that may own an attribute source.
// The zero value means "no entity".
type EntityRef string

// IsZero reports whether the reference is empty.
func (e EntityRef) IsZero() bool {
	return e == ""
}

// String returns the entity name.
func (e EntityRef) String() string {
	return string(e)
}

// TaskID identifies a task instance. Attribute sources key subscriptions by it.
type TaskID string

// String returns the task identifier.
func (id TaskID) String() string {
	return string(id)
}

// Provenance carries the source-side data of the effect that caused a change.
type Provenance struct {
	// SourceTags are the aggregated tags captured from the effect source.
	SourceTags TagContainer
}

// AttributeChangeEvent is delivered to subscribers whenever an attribute is written.
type AttributeChangeEvent struct {
	Key      AttributeKey
	OldValue float64
	NewValue float64
	// Provenance is nil for removal-style changes that carry no effect data.
	Provenance *Provenance
}
