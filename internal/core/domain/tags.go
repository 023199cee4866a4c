package domain

import (
	"slices"
	"strings"
)

// Tag is a hierarchical dotted name such as "Damage.Fire". The empty tag is unset.
type Tag string

// IsValid reports whether the tag is set.
func (t Tag) IsValid() bool {
	return t != ""
}

// Matches reports whether t equals other or is one of its descendants.
// "Damage.Fire" matches "Damage"; "Damage" does not match "Damage.Fire".
func (t Tag) Matches(other Tag) bool {
	if !t.IsValid() || !other.IsValid() {
		return false
	}
	if t == other {
		return true
	}
	return strings.HasPrefix(string(t), string(other)+".")
}

// TagContainer is an immutable, sorted set of tags.
type TagContainer struct {
	tags []Tag
}

// NewTagContainer builds a container from the given tags, dropping empty and duplicate entries.
func NewTagContainer(tags ...Tag) TagContainer {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if t.IsValid() {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return TagContainer{tags: slices.Compact(out)}
}

// HasTag reports whether any tag in the container matches t, including parent matches.
func (c TagContainer) HasTag(t Tag) bool {
	for _, own := range c.tags {
		if own.Matches(t) {
			return true
		}
	}
	return false
}

// Tags returns a copy of the contained tags in sorted order.
func (c TagContainer) Tags() []Tag {
	return slices.Clone(c.tags)
}

// Len returns the number of tags.
func (c TagContainer) Len() int {
	return len(c.tags)
}

// TagGate filters attribute changes on the tags of the effect that caused them.
type TagGate struct {
	Required Tag
	Excluded Tag
}

// Passes reports whether a change with the given provenance satisfies the gate.
// Without provenance a required tag cannot be proven, so the gate fails; an
// excluded tag cannot be proven either, so that check passes.
func (g TagGate) Passes(provenance *Provenance) bool {
	if provenance == nil {
		return !g.Required.IsValid()
	}
	if g.Required.IsValid() && !provenance.SourceTags.HasTag(g.Required) {
		return false
	}
	if g.Excluded.IsValid() && provenance.SourceTags.HasTag(g.Excluded) {
		return false
	}
	return true
}
