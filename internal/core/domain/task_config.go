package domain

// TaskConfig is the authoring-time configuration of an attribute-change task.
// It must not be mutated once the task is activated.
type TaskConfig struct {
	Attributes  []AttributeKey
	Comparison  ComparisonKind
	Threshold   float64
	Gate        TagGate
	TriggerOnce bool
}

// Normalized returns a copy of the configuration with empty and duplicate
// attribute keys removed. The first occurrence of each key keeps its position.
func (c TaskConfig) Normalized() TaskConfig {
	seen := make(map[AttributeKey]struct{}, len(c.Attributes))
	keys := make([]AttributeKey, 0, len(c.Attributes))
	for _, key := range c.Attributes {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	c.Attributes = keys
	return c
}

// Accepts runs the full filter chain for a single change: significance, tag gate, then comparison.
func (c TaskConfig) Accepts(event AttributeChangeEvent) bool {
	if IsNearlyEqual(event.OldValue, event.NewValue) {
		return false
	}
	if !c.Gate.Passes(event.Provenance) {
		return false
	}
	return Evaluate(c.Comparison, event.NewValue, c.Threshold)
}
