package ports

import "go.fmods.dev/fmods/internal/core/domain"

// ConfigStore persists the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_store.go -destination=mocks/mock_config_store.go -package=mocks
type ConfigStore interface {
	// Load reads the stored configuration, falling back to defaults when
	// none exists.
	Load() (*domain.Config, error)

	// Save writes the configuration.
	Save(cfg *domain.Config) error
}
