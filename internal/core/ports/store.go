package ports

import "go.trai.ch/rewind/internal/core/domain"

// TimelineStore persists the recorded outcome of scenario runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TimelineStore interface {
	// Get retrieves the timeline recorded for a scenario.
	// Returns nil, nil if not found.
	Get(root, scenario string) (*domain.Timeline, error)

	// Put stores a timeline, replacing any previous recording of the same scenario.
	Put(root string, timeline *domain.Timeline) error
}
