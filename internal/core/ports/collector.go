package ports

import "go.trai.ch/stencil/internal/core/domain"

// Collector populates a fresh blueprint with one slice of live system state
// (installed packages, captured files, running services). Collectors are
// platform-specific and run in their registration order.
//
//go:generate mockgen -source=collector.go -destination=mocks/mock_collector.go -package=mocks
type Collector interface {
	// Name identifies the collector in logs.
	Name() string

	// Collect inspects the live system and records what it finds, skipping
	// anything the ignore rules exclude. It must only add resources, never
	// remove them.
	Collect(bp *domain.Blueprint, rules IgnoreRules) error
}
