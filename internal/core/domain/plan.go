package domain

// InstallAction installs a mod that is not present yet.
type InstallAction struct {
	ModID   string
	Version Version
}

// UpdateAction replaces an installed mod with a newer release.
type UpdateAction struct {
	ModID      string
	OldVersion Version
	NewVersion Version
}

// Plan is the classified outcome of a resolution run against a snapshot,
// consumed by the installer. Action lists preserve the discovery order of
// the resolved set.
type Plan struct {
	Install   []InstallAction
	Update    []UpdateAction
	Conflicts []string
}

// Empty reports whether the plan contains no actions at all.
func (p *Plan) Empty() bool {
	return len(p.Install) == 0 && len(p.Update) == 0 && len(p.Conflicts) == 0
}
