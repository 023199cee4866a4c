// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rewind/internal/adapters/config"
	_ "go.trai.ch/rewind/internal/adapters/logger"
	_ "go.trai.ch/rewind/internal/adapters/telemetry"
	_ "go.trai.ch/rewind/internal/adapters/timeline"
	_ "go.trai.ch/rewind/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/rewind/internal/app"
)
