package ports

import "go.trai.ch/stencil/internal/core/domain"

// Generator turns a blueprint into configuration-management source text for
// one target system. Implementations drive the blueprint's walk engine and
// should prepend domain.Disclaimer to everything they emit.
type Generator interface {
	// Target names the system the generator emits for, e.g. "sh".
	Target() string

	// Generate walks the blueprint and returns the generated source.
	Generate(bp *domain.Blueprint) (string, error)
}
