package prediction

import "go.trai.ch/rewind/internal/core/domain"

// Focus decides which entity's attribute source a task listens to.
// It is the only point where owner-bound and target-bound tasks differ in how
// they find their source.
type Focus interface {
	// Entity returns the focused entity for a task owned by owner.
	Entity(owner domain.EntityRef) domain.EntityRef
}

// OwnerFocus always focuses the owning entity.
type OwnerFocus struct{}

// Entity returns owner.
func (OwnerFocus) Entity(owner domain.EntityRef) domain.EntityRef {
	return owner
}

// TargetFocus focuses a cached external target and falls back to the owner
// while no target is cached. An empty target cannot be told apart from a target
// that is genuinely the owner; both resolve to the owner's source.
type TargetFocus struct {
	Target domain.EntityRef
}

// Entity returns the cached target, or owner when none is set.
func (f *TargetFocus) Entity(owner domain.EntityRef) domain.EntityRef {
	return resolveTarget(f.Target, owner)
}

func resolveTarget(target, owner domain.EntityRef) domain.EntityRef {
	if target.IsZero() {
		return owner
	}
	return target
}
