// Package app implements the application layer for stencil.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/stencil/internal/core/domain"
	"go.trai.ch/stencil/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	store      ports.BlueprintStore
	logger     ports.Logger
	collectors []ports.Collector
	rules      ports.IgnoreRules
}

// New creates a new App instance.
func New(store ports.BlueprintStore, log ports.Logger) *App {
	return &App{
		store:  store,
		logger: log,
		rules:  allowAll{},
	}
}

// WithCollectors registers the collectors Create runs, in invocation order.
func (a *App) WithCollectors(collectors ...ports.Collector) *App {
	a.collectors = append(a.collectors, collectors...)
	return a
}

// WithIgnoreRules sets the capture exclusion rules handed to collectors.
func (a *App) WithIgnoreRules(rules ports.IgnoreRules) *App {
	if rules != nil {
		a.rules = rules
	}
	return a
}

// allowAll is the default rule set: nothing is excluded.
type allowAll struct{}

func (allowAll) Ignored(string) bool { return false }

// List returns every blueprint name in the store.
func (a *App) List(_ context.Context) ([]string, error) {
	return a.store.List()
}

// Show returns the canonical document for a name, optionally at a specific
// commit instead of the branch tip.
func (a *App) Show(_ context.Context, name, commitID string) ([]byte, error) {
	bp, err := a.store.Load(name, commitID)
	if err != nil {
		return nil, err
	}
	return bp.MarshalCanonical()
}

// Diff loads two blueprints, subtracts base from derived and commits the
// result under a new name. The operands are independent branches, so they
// load concurrently.
func (a *App) Diff(ctx context.Context, derived, base, result, message string) (string, error) {
	if err := domain.ValidateName(result); err != nil {
		return "", err
	}

	var from, subtrahend *domain.Blueprint
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		bp, err := a.store.Load(derived, "")
		if err != nil {
			return zerr.With(err, "name", derived)
		}
		from = bp
		return nil
	})
	g.Go(func() error {
		bp, err := a.store.Load(base, "")
		if err != nil {
			return zerr.With(err, "name", base)
		}
		subtrahend = bp
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	diff := from.Subtract(subtrahend)
	if err := diff.Rename(result); err != nil {
		return "", err
	}
	if message == "" {
		message = fmt.Sprintf("%s - %s", derived, base)
	}
	return a.store.Commit(diff, message)
}

// Destroy deletes the branch for a name.
func (a *App) Destroy(_ context.Context, name string) error {
	return a.store.Destroy(name)
}

// Import decodes a canonical document and commits it under a name.
func (a *App) Import(_ context.Context, name string, doc []byte, message string) (string, error) {
	bp, err := domain.UnmarshalBlueprint(doc)
	if err != nil {
		return "", err
	}
	if err := bp.Rename(name); err != nil {
		return "", err
	}
	if message == "" {
		message = fmt.Sprintf("imported %s", name)
	}
	return a.store.Commit(bp, message)
}

// Create captures the live system state by running every registered
// collector in registration order, then commits the result.
func (a *App) Create(_ context.Context, name, message string) (string, error) {
	bp, err := domain.New(name)
	if err != nil {
		return "", err
	}
	for _, collector := range a.collectors {
		a.logger.Info(fmt.Sprintf("collecting %s", collector.Name()))
		if err := collector.Collect(bp, a.rules); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrCollectorFailed.Error()), "collector", collector.Name())
		}
	}
	if message == "" {
		message = fmt.Sprintf("created %s", name)
	}
	return a.store.Commit(bp, message)
}
