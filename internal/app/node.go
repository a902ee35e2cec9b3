package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/stencil/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/stencil/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/stencil/internal/adapters/gitstore"
	"go.trai.ch/stencil/internal/adapters/ignore" //nolint:depguard // Wired in app layer
	"go.trai.ch/stencil/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/stencil/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components aggregates everything the entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
	Config *config.Config
	Store  ports.BlueprintStore
	Hasher ports.Hasher
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gitstore.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			store, err := graft.Dep[ports.BlueprintStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, log).WithIgnoreRules(loadIgnoreRules(cfg.IgnoreFile)), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			gitstore.NodeID,
			fs.HasherNodeID,
		},
		Run: runComponentsNode,
	})
}

// loadIgnoreRules parses the configured ignore file. A missing or unreadable
// file means no exclusions; capture must not fail over it.
func loadIgnoreRules(path string) ports.IgnoreRules {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ignore.Parse(string(data))
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*config.Config](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.BlueprintStore](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Config: cfg,
		Store:  store,
		Hasher: hasher,
	}, nil
}
