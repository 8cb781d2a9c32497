// Package planner classifies a resolved requirement set into the install,
// update and conflict actions needed to bring an instance in line with it.
package planner

import "go.fmods.dev/fmods/internal/core/domain"

// Compute builds the change plan for a resolved requirement set against an
// instance snapshot. Action lists preserve the order of the resolved set;
// no further ordering is applied.
func Compute(snapshot *domain.Snapshot, resolved []domain.Requirement) *domain.Plan {
	plan := &domain.Plan{}

	for _, req := range resolved {
		switch req.Kind {
		case domain.KindConflict:
			if _, installed := snapshot.Installed(req.ModID); installed {
				plan.Conflicts = append(plan.Conflicts, req.ModID)
			}

		case domain.KindRequire:
			// Game content ships with the game and is never installed or
			// updated independently; its adequacy was a precondition of
			// resolution succeeding.
			if domain.IsGameContent(req.ModID) || req.Version == nil {
				continue
			}

			resolvedVersion := *req.Version
			installedVersion, installed := snapshot.Installed(req.ModID)

			switch {
			case !installed:
				plan.Install = append(plan.Install, domain.InstallAction{
					ModID:   req.ModID,
					Version: resolvedVersion,
				})
			case installedVersion.Less(resolvedVersion):
				plan.Update = append(plan.Update, domain.UpdateAction{
					ModID:      req.ModID,
					OldVersion: installedVersion,
					NewVersion: resolvedVersion,
				})
			}

		case domain.KindOptional:
			// Optional requirements never produce actions.
		}
	}

	return plan
}
