package domain

import (
	"errors"
	"strings"

	"go.trai.ch/zerr"
)

// RequirementKind is the relation a requirement expresses toward the
// dependency graph being built.
type RequirementKind int

const (
	// KindRequire is a hard dependency that must be resolved and present.
	KindRequire RequirementKind = iota
	// KindOptional is a soft dependency; it is recorded but never expanded.
	KindOptional
	// KindConflict marks a mod that must not be installed alongside.
	KindConflict
)

// String returns the human-readable kind name.
func (k RequirementKind) String() string {
	switch k {
	case KindOptional:
		return "Optional"
	case KindConflict:
		return "Conflict"
	default:
		return "Require"
	}
}

// Requirement is one dependency declaration: a mod id, an optional minimum
// version, and the kind of relation. Releases declare requirements as
// compact strings; the resolver also synthesizes one as its root.
type Requirement struct {
	ModID   string
	Version *Version
	Kind    RequirementKind
}

// NewRequirement creates a Requirement. version may be nil.
func NewRequirement(modID string, version *Version, kind RequirementKind) Requirement {
	return Requirement{ModID: modID, Version: version, Kind: kind}
}

// decorationStripper removes the grammar elements that carry no meaning:
// parentheses and the load-order hint, in any position.
var decorationStripper = strings.NewReplacer("(", "", ")", "", "~", "")

// ParseRequirement parses the compact dependency grammar used by release
// metadata:
//
//	["("] [ "!" | "?" ] <mod id> [ ">=" <version> ] ["~"] [")"]
//
// A leading "!" means Conflict, "?" means Optional, no marker means
// Require. Parentheses and the "~" load-order hint carry no semantics and
// are stripped wherever they appear, so "(flib >= 0.9) ~" and
// "(flib >= 0.9 ~)" parse alike. No relational operator other than ">="
// is supported; anything else is treated as part of the mod id. A bad
// version yields ErrMalformedRequirement.
func ParseRequirement(s string) (Requirement, error) {
	body := strings.TrimSpace(decorationStripper.Replace(s))

	kind := KindRequire
	switch {
	case strings.HasPrefix(body, "!"):
		kind = KindConflict
		body = strings.TrimSpace(body[1:])
	case strings.HasPrefix(body, "?"):
		kind = KindOptional
		body = strings.TrimSpace(body[1:])
	}

	modID := body
	var version *Version
	if id, versionText, found := strings.Cut(body, ">="); found {
		parsed, err := ParseVersion(versionText)
		if err != nil {
			return Requirement{}, zerr.With(errors.Join(ErrMalformedRequirement, err), "requirement", s)
		}
		modID = id
		version = &parsed
	}

	modID = strings.TrimSpace(modID)
	if modID == "" {
		return Requirement{}, zerr.With(ErrMalformedRequirement, "requirement", s)
	}

	return Requirement{ModID: modID, Version: version, Kind: kind}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so requirement strings
// decode directly out of release JSON.
func (r *Requirement) UnmarshalText(text []byte) error {
	parsed, err := ParseRequirement(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// String renders the requirement back in the compact grammar.
func (r Requirement) String() string {
	var b strings.Builder
	switch r.Kind {
	case KindConflict:
		b.WriteString("! ")
	case KindOptional:
		b.WriteString("? ")
	}
	b.WriteString(r.ModID)
	if r.Version != nil {
		b.WriteString(" >= ")
		b.WriteString(r.Version.String())
	}
	return b.String()
}
