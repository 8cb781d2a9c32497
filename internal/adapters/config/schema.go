package config

// configFile is the on-disk YAML layout of the tool configuration.
type configFile struct {
	Ask             bool              `yaml:"ask"`
	DefaultInstance string            `yaml:"default_instance,omitempty"`
	Instances       map[string]string `yaml:"instances"`
}
