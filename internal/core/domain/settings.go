package domain

// Default settings values.
const (
	DefaultArchiveRoot = "memory"
	DefaultSearchLimit = 10
	DefaultServerAddr  = ":8080"
)

// Settings holds the resolved runtime configuration.
type Settings struct {
	// ArchiveRoot is the directory holding the Markdown archive.
	ArchiveRoot string

	// SearchLimit caps displayed results.
	SearchLimit int

	// ServerAddr is the listen address of the web archive.
	ServerAddr string

	// Watch rebuilds the document set when files change.
	Watch bool
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		ArchiveRoot: DefaultArchiveRoot,
		SearchLimit: DefaultSearchLimit,
		ServerAddr:  DefaultServerAddr,
		Watch:       true,
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if s.ArchiveRoot == "" {
		return ErrInvalidInput
	}
	if s.SearchLimit < 0 {
		return ErrInvalidInput
	}
	return nil
}
