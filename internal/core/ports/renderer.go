package ports

import "go.trai.ch/rewind/internal/core/domain"

// Renderer is the abstraction for output rendering of simulation runs.
// Scenarios may run concurrently, so implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnScenarioStart is called before the first frame of a scenario is simulated.
	OnScenarioStart(scenario string)

	// OnTrigger is called for every task broadcast.
	OnTrigger(scenario string, trigger domain.Trigger)

	// OnRollback is called after a correction has been reconciled.
	OnRollback(scenario string, record domain.RollbackRecord)

	// OnScenarioComplete is called once a scenario has finished, with a nil
	// error on success.
	OnScenarioComplete(scenario string, err error)

	// Flush writes any buffered output.
	Flush() error
}
