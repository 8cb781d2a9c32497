package domain

// gameContentIDs is the closed set of mod ids that ship with the game
// itself. Requirements on them are version assertions against the
// snapshot's content versions and are never looked up in the registry or
// independently installed.
var gameContentIDs = map[string]struct{}{
	"base":           {},
	"quality":        {},
	"elevated-rails": {},
	"space-age":      {},
}

// IsGameContent reports whether the mod id names game-bundled content.
func IsGameContent(modID string) bool {
	_, ok := gameContentIDs[modID]
	return ok
}
