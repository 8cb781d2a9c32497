package portal

import "go.fmods.dev/fmods/internal/core/domain"

// modPage is the portal's "full" mod endpoint payload, reduced to the
// fields resolution needs. Version and requirement strings decode through
// the domain text unmarshalers, so a malformed requirement in a release
// list surfaces as a decode error at fetch time.
type modPage struct {
	Releases []releaseDTO `json:"releases"`
}

type releaseDTO struct {
	Version  domain.Version `json:"version"`
	InfoJSON releaseInfo    `json:"info_json"`
}

type releaseInfo struct {
	Dependencies    []domain.Requirement `json:"dependencies"`
	FactorioVersion domain.Version       `json:"factorio_version"`
}
