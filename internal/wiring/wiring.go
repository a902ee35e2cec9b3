// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/stencil/internal/adapters/config"
	_ "go.trai.ch/stencil/internal/adapters/fs"
	_ "go.trai.ch/stencil/internal/adapters/gitstore"
	_ "go.trai.ch/stencil/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/stencil/internal/app"
)
