// Package resolver implements the dependency resolution engine. Starting
// from a single root requirement it discovers the transitive requirement
// closure against the registry, reconciling competing version demands for
// the same mod by always taking the maximum ever demanded.
package resolver

import (
	"context"
	"errors"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.fmods.dev/fmods/internal/core/ports"
	"go.trai.ch/zerr"
)

// entry is the resolver's per-mod state. usages is an approximate reference
// count: it tracks how many live requirements still point at this entry,
// and entries that finish at zero or below are dropped from the output.
type entry struct {
	version *domain.Version
	kind    domain.RequirementKind
	usages  int64
}

// processor owns the state of one resolution run: the worklist of pending
// requirements and the per-mod entry map. It is constructed fresh per call
// and never shared between runs.
type processor struct {
	registry ports.Registry
	snapshot *domain.Snapshot

	pending []domain.Requirement
	entries map[string]*entry
	order   []string
}

// Resolve computes the set of requirements needed to install the given mod
// into the instance described by snapshot. A nil version resolves to the
// newest compatible release. The returned slice preserves discovery order.
//
// Resolution is strictly serial: each mod is looked up at most once per
// run, and only when its requirement is not already satisfied by the
// snapshot or by an earlier resolution. Any error aborts the run with no
// partial result.
func Resolve(
	ctx context.Context,
	registry ports.Registry,
	snapshot *domain.Snapshot,
	modID string,
	version *domain.Version,
) ([]domain.Requirement, error) {
	p := &processor{
		registry: registry,
		snapshot: snapshot,
		entries:  map[string]*entry{},
	}

	p.pending = []domain.Requirement{domain.NewRequirement(modID, version, domain.KindRequire)}

	// Drain the worklist one generation at a time; processing a batch may
	// enqueue requirements for the next one. Versions only ever move
	// upward and release requirement lists are finite, so this terminates
	// even when mods require each other cyclically.
	for len(p.pending) > 0 {
		batch := p.pending
		p.pending = nil

		for _, req := range batch {
			if err := p.process(ctx, req); err != nil {
				return nil, err
			}
		}
	}

	resolved := make([]domain.Requirement, 0, len(p.order))
	for _, id := range p.order {
		e := p.entries[id]
		if e.usages <= 0 {
			continue
		}
		resolved = append(resolved, domain.Requirement{ModID: id, Version: e.version, Kind: e.kind})
	}

	return resolved, nil
}

// process handles a single pending requirement. Only Require expands into
// a registry lookup; Optional and Conflict are recorded as-is.
func (p *processor) process(ctx context.Context, req domain.Requirement) error {
	if p.satisfied(req) {
		return nil
	}

	if req.Kind != domain.KindRequire {
		p.merge(req, nil)
		return nil
	}

	// Game content ships with the game itself. Its requirement is a pure
	// version assertion; the registry already filtered releases down to
	// those the snapshot's content versions can satisfy.
	if domain.IsGameContent(req.ModID) {
		p.merge(req, nil)
		return nil
	}

	releases, err := p.registry.Releases(ctx, req.ModID)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrModLookupFailed, err), "mod", req.ModID)
	}

	release, ok := selectRelease(releases, req.Version)
	if !ok {
		lookupErr := zerr.With(domain.ErrNoSuitableRelease, "mod", req.ModID)
		if req.Version != nil {
			lookupErr = zerr.With(lookupErr, "requested_version", req.Version.String())
		}
		return lookupErr
	}

	p.pending = append(p.pending, release.Requirements...)

	chosen := release.Version
	req.Version = &chosen
	p.merge(req, releases)

	return nil
}

// satisfied reports whether req needs no further work. A requirement is
// satisfied by an installed mod meeting its minimum version, or by an
// existing entry: for non-Require kinds existence alone is enough, for
// Require the entry's resolved version must meet the minimum. Satisfying a
// Require against an existing entry counts as one more consumer of it.
//
// A Conflict is never satisfied by an installed mod: it must reach the
// entry map so the planner can schedule the mod's removal.
func (p *processor) satisfied(req domain.Requirement) bool {
	if req.Kind != domain.KindConflict {
		if installed, ok := p.snapshot.Installed(req.ModID); ok {
			if req.Version == nil || installed.AtLeast(*req.Version) {
				return true
			}
		}
	}

	e, ok := p.entries[req.ModID]
	if !ok {
		return false
	}

	if req.Kind != domain.KindRequire {
		return true
	}

	meets := req.Version == nil || (e.version != nil && e.version.AtLeast(*req.Version))
	if meets {
		e.usages++
	}

	return meets
}

// merge records req in the entry map. sourceReleases is the registry
// response req's version was chosen from; when req supersedes an entry's
// version, the old release's declared requirements each lose one usage.
//
// The retraction is an approximation: a sub-requirement still needed via
// an independent path keeps its other usages, but overlapping requirement
// lists across releases of the same mod can under- or over-retain entries.
func (p *processor) merge(req domain.Requirement, sourceReleases []domain.Release) {
	e, ok := p.entries[req.ModID]
	if !ok {
		p.entries[req.ModID] = &entry{version: req.Version, kind: req.Kind, usages: 1}
		p.order = append(p.order, req.ModID)
		return
	}

	e.usages++

	// A nil stored version (an entry first recorded from a versionless
	// Optional or Conflict spec) is never replaced, and the stored kind
	// never changes. Only a strictly greater concrete version supersedes a
	// concrete one. Intentional, matching the approximate bookkeeping.
	if e.version == nil || req.Version == nil || !e.version.Less(*req.Version) {
		return
	}

	superseded, found := findRelease(sourceReleases, *e.version)
	e.version = req.Version

	if !found {
		return
	}
	for _, sub := range superseded.Requirements {
		p.removeUsage(sub)
	}
}

// removeUsage retracts one usage of req's mod. A mod never seen before
// gets a negative bookkeeping entry; the output filter drops it regardless.
func (p *processor) removeUsage(req domain.Requirement) {
	if e, ok := p.entries[req.ModID]; ok {
		e.usages--
		return
	}

	p.entries[req.ModID] = &entry{version: req.Version, kind: req.Kind, usages: -1}
	p.order = append(p.order, req.ModID)
}

// selectRelease picks the release a requirement resolves to: the exact
// version when one is named, otherwise the newest compatible release.
func selectRelease(releases []domain.Release, want *domain.Version) (domain.Release, bool) {
	if want != nil {
		return findRelease(releases, *want)
	}
	if len(releases) == 0 {
		return domain.Release{}, false
	}
	return releases[len(releases)-1], true
}

func findRelease(releases []domain.Release, version domain.Version) (domain.Release, bool) {
	for _, release := range releases {
		if release.Version.Compare(version) == 0 {
			return release, true
		}
	}
	return domain.Release{}, false
}
