package ports

import (
	"context"

	"go.fmods.dev/fmods/internal/core/domain"
)

// Installer fetches and removes mod artifacts. It runs strictly after
// planning; it never feeds back into resolution.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install downloads the mod archive at the given version and extracts
	// it into the instance's mods directory.
	Install(ctx context.Context, modID string, version domain.Version) error

	// Remove deletes the installed mod's directories.
	Remove(modID string) error
}
