package ports

import "go.fmods.dev/fmods/internal/core/domain"

// SnapshotLoader builds the read-only installed-state snapshot for an
// instance directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshot_loader.go -destination=mocks/mock_snapshot_loader.go -package=mocks
type SnapshotLoader interface {
	// Load scans the instance at path and returns its snapshot.
	Load(path string) (*domain.Snapshot, error)
}
