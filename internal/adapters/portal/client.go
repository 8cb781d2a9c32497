// Package portal implements the mod registry port against the Factorio
// mod portal HTTP API.
package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultBaseURL = "https://mods.factorio.com"

// Client implements ports.Registry over the mod portal. It filters a mod's
// releases down to those compatible with the instance snapshot and returns
// them sorted ascending by version, so the resolver never has to check
// compatibility itself.
type Client struct {
	baseURL  string
	client   *http.Client
	snapshot *domain.Snapshot
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the portal base URL. Used for testing.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

// NewClient creates a portal client bound to the given instance snapshot.
func NewClient(snapshot *domain.Snapshot, opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		client:   http.DefaultClient,
		snapshot: snapshot,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Releases fetches the mod's full release list from the portal and filters
// it to the releases the instance can run.
func (c *Client) Releases(ctx context.Context, modID string) ([]domain.Release, error) {
	endpoint := c.baseURL + "/api/mods/" + url.PathEscape(modID) + "/full"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build portal request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, "portal request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.New("unexpected portal response status"), "status", resp.StatusCode)
	}

	var page modPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, zerr.Wrap(err, "failed to decode portal response")
	}

	releases := make([]domain.Release, 0, len(page.Releases))
	for _, rel := range page.Releases {
		if !c.compatible(rel) {
			continue
		}
		releases = append(releases, domain.Release{
			Version:      rel.Version,
			Requirements: rel.InfoJSON.Dependencies,
		})
	}

	slices.SortFunc(releases, func(a, b domain.Release) int {
		return a.Version.Compare(b.Version)
	})

	return releases, nil
}

// compatible reports whether a release targets the snapshot's game version
// and whether the snapshot's bundled content can satisfy the release's
// game-content requirements.
func (c *Client) compatible(rel releaseDTO) bool {
	if rel.InfoJSON.FactorioVersion.Compare(c.snapshot.GameVersion) != 0 {
		return false
	}

	for _, dep := range rel.InfoJSON.Dependencies {
		if dep.Kind != domain.KindRequire || !domain.IsGameContent(dep.ModID) {
			continue
		}

		content, ok := c.snapshot.ContentVersions[dep.ModID]
		if !ok {
			return false
		}
		if dep.Version != nil && content.Less(*dep.Version) {
			return false
		}
	}

	return true
}
