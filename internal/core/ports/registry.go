// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.fmods.dev/fmods/internal/core/domain"
)

// Registry provides mod release metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Releases returns the releases of the named mod that are compatible
	// with the current instance, sorted ascending by version. Compatibility
	// filtering (game version match, game-content requirements satisfiable)
	// is the registry's responsibility.
	Releases(ctx context.Context, modID string) ([]domain.Release, error)
}
