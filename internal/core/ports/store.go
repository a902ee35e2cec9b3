package ports

import "go.trai.ch/stencil/internal/core/domain"

// BlueprintStore persists blueprints as commits on one branch per name.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BlueprintStore interface {
	// Commit serializes the blueprint together with its referenced source
	// tarballs and the ignore file, writes a commit whose parent is the
	// current branch tip, and advances the branch. Returns the commit id.
	Commit(bp *domain.Blueprint, message string) (string, error)

	// Load resolves a name (or an explicit commit id) to a blueprint.
	// Returns domain.ErrNotFound for unknown names or commits.
	Load(name, commitID string) (*domain.Blueprint, error)

	// Destroy deletes the branch for a name. Returns domain.ErrNotFound if
	// the repository or the branch does not exist.
	Destroy(name string) error

	// List returns every blueprint name in sorted order; an empty slice if
	// the repository does not exist yet.
	List() ([]string, error)

	// IgnoreContent returns the raw ignore-rule text stored with the
	// blueprint's commit, falling back to the legacy filename. Nil when the
	// commit carries no ignore file.
	IgnoreContent(bp *domain.Blueprint) ([]byte, error)
}
