package ports

import "go.trai.ch/rewind/internal/core/domain"

// ScenarioLoader defines the interface for loading simulation scenarios.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ScenarioLoader interface {
	// Load reads and validates the scenario file at path.
	Load(path string) (*domain.Scenario, error)

	// Discover expands the given paths into scenario files.
	// Directories contribute every scenario file they contain; an empty list
	// resolves to the default scenario file in cwd.
	Discover(cwd string, paths []string) ([]string, error)
}
