package domain

// Config is the persisted tool configuration: the known instances and the
// interactive-prompt preference.
type Config struct {
	// Ask enables interactive confirmation prompts.
	Ask bool
	// DefaultInstance names the instance used when --instance is not given.
	// Empty means none.
	DefaultInstance string
	// Instances maps instance names to their directories.
	Instances map[string]string
}

// DefaultConfig returns the configuration used when none is stored yet.
func DefaultConfig() *Config {
	return &Config{
		Ask:       true,
		Instances: map[string]string{},
	}
}
