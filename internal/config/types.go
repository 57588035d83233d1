package config

// Config is read once at startup and not modified afterwards. JSON keys use
// snake_case; unknown keys are rejected.
type Config struct {
	// Order is the dictionary order: "frequency" or "first-seen".
	Order string `json:"order"`
	// MinCount and MinLength tune the dictionary; nil means 0, the
	// selector's default.
	MinCount  *int `json:"min_count,omitempty"`
	MinLength *int `json:"min_length,omitempty"`

	// Container wraps the encoded document: none, gzip, zstd, snappy,
	// brotli or lz4. Level 0 is the container's default.
	Container string `json:"container"`
	Level     *int   `json:"level,omitempty"`

	// Check decodes the output after encoding and compares it with the
	// input. Default true.
	Check *bool `json:"check,omitempty"`
	// Atomic writes the output through a temp file and rename. Default true.
	Atomic *bool `json:"atomic,omitempty"`

	Logging Logging `json:"logging"`
}

type Logging struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

func (c Config) CheckEnabled() bool  { return c.Check == nil || *c.Check }
func (c Config) AtomicEnabled() bool { return c.Atomic == nil || *c.Atomic }

// ContainerLevel returns the configured container level, 0 if unset.
func (c Config) ContainerLevel() int { return intValue(c.Level) }

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
