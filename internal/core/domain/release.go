package domain

// Release is one published version of a mod together with the requirements
// it declares. Releases are immutable, externally supplied data: the
// registry hands the resolver only environment-compatible releases, sorted
// ascending by version.
type Release struct {
	Version      Version
	Requirements []Requirement
}

// InstalledMod is one installed mod in the instance snapshot.
type InstalledMod struct {
	Name    string
	Version Version
}

// Snapshot is the read-only view of an instance for the duration of one
// resolution and planning call: the game version, the versions of content
// bundled with the game itself, and the installed mods.
type Snapshot struct {
	Path string
	// GameVersion is the instance's game version with the patch component
	// zeroed; releases are compatibility-matched against it.
	GameVersion Version
	// ContentVersions maps reserved game-content ids to their bundled
	// versions.
	ContentVersions map[string]Version
	// Mods are the independently installed mods.
	Mods []InstalledMod
	// ModsDir is where mod archives are extracted to.
	ModsDir string
}

// Installed returns the installed version of the named mod, if present.
func (s *Snapshot) Installed(modID string) (Version, bool) {
	for _, m := range s.Mods {
		if m.Name == modID {
			return m.Version, true
		}
	}
	return Version{}, false
}
