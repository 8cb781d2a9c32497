package domain

import "errors"

// Sentinels are plain errors so that decorating them with zerr.With wraps
// them into the chain instead of cloning them; errors.Is keeps matching
// after metadata is attached.

var (
	// ErrMalformedVersion is returned when a version string does not parse
	// as "major[.minor[.patch]]".
	ErrMalformedVersion = errors.New("malformed version")

	// ErrMalformedRequirement is returned when a release's requirement
	// string does not match the dependency grammar.
	ErrMalformedRequirement = errors.New("malformed requirement")

	// ErrModLookupFailed is returned when the registry could not be reached
	// or returned data that does not decode.
	ErrModLookupFailed = errors.New("mod lookup failed")

	// ErrNoSuitableRelease is returned when a mod has no compatible release,
	// or the explicitly requested version is absent.
	ErrNoSuitableRelease = errors.New("no suitable release")

	// ErrInstanceNotFound is returned when the instance directory does not
	// exist.
	ErrInstanceNotFound = errors.New("instance directory does not exist")

	// ErrBrokenInstance is returned when the instance directory exists but
	// its game data cannot be read.
	ErrBrokenInstance = errors.New("broken instance")

	// ErrUnknownInstance is returned when no configured instance matches the
	// requested name.
	ErrUnknownInstance = errors.New("unknown instance")

	// ErrInstanceExists is returned when registering an instance under a
	// name that is already taken.
	ErrInstanceExists = errors.New("instance already exists")

	// ErrNoInstanceSelected is returned when no instance was named and no
	// default is configured.
	ErrNoInstanceSelected = errors.New("no instance selected")

	// ErrModNotInstalled is returned when removing a mod that is not
	// installed.
	ErrModNotInstalled = errors.New("mod is not installed")

	// ErrDownloadFailed is returned when fetching or extracting a mod
	// archive fails.
	ErrDownloadFailed = errors.New("download failed")
)
