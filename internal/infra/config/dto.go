package config

// fileConfig mirrors targets.yaml / targets.toml. Pointers distinguish "unset" from zero values.
type fileConfig struct {
	Documents struct {
		Base      string `yaml:"base" toml:"base"`
		Extension string `yaml:"extension" toml:"extension"`
	} `yaml:"documents" toml:"documents"`

	Log struct {
		Debug *bool  `yaml:"debug" toml:"debug"`
		File  string `yaml:"file" toml:"file"`
	} `yaml:"log" toml:"log"`
}
