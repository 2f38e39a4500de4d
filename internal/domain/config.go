package domain

// Config represents the workspace configuration loaded from targets.yaml or targets.toml.
type Config struct {
	Documents DocumentsConfig
	Log       LogConfig
}

type DocumentsConfig struct {
	// Base is the bootstrap document resolved before every target.
	Base string
	// Extension is appended to document names to build file names.
	Extension string
}

type LogConfig struct {
	Debug bool
	File  string
}

// DefaultConfig provides sane defaults if the workspace config is missing or partial.
func DefaultConfig() Config {
	return Config{
		Documents: DocumentsConfig{
			Base:      "misc/default",
			Extension: ".yml",
		},
	}
}
