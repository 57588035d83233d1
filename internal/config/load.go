// Package config loads the wordpack configuration from JSON, the environment
// and command line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/textpack/wordpack"
	"github.com/textpack/wordpack/container"
)

// EnvPrefix is the prefix of the environment variables EnvOverlay reads.
const EnvPrefix = "WORDPACK_"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Defaults returns the configuration used when nothing else is given.
func Defaults() Config {
	return Config{
		Order:     wordpack.ByFrequency.String(),
		Container: string(container.None),
		Logging:   Logging{Level: "info", Format: "text"},
	}
}

// LoadJSON parses a Config from raw, or from the file at path if raw is
// empty. Unknown fields are an error.
func LoadJSON(path string, raw []byte) (Config, error) {
	var cfg Config
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		r = f
	default:
		return cfg, errors.New("no config source provided")
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

// Merge returns base with every field that is set in over replaced.
// Empty strings and nil pointers in over mean "not set".
func Merge(base, over Config) Config {
	out := base
	if s := strings.TrimSpace(over.Order); s != "" {
		out.Order = s
	}
	if over.MinCount != nil {
		out.MinCount = copyInt(over.MinCount)
	}
	if over.MinLength != nil {
		out.MinLength = copyInt(over.MinLength)
	}
	if s := strings.TrimSpace(over.Container); s != "" {
		out.Container = s
	}
	if over.Level != nil {
		out.Level = copyInt(over.Level)
	}
	if over.Check != nil {
		v := *over.Check
		out.Check = &v
	}
	if over.Atomic != nil {
		v := *over.Atomic
		out.Atomic = &v
	}
	if s := strings.TrimSpace(over.Logging.Level); s != "" {
		out.Logging.Level = s
	}
	if s := strings.TrimSpace(over.Logging.Format); s != "" {
		out.Logging.Format = s
	}
	return out
}

// EnvOverlay builds a Config from WORDPACK_* variables in environ (as
// returned by os.Environ). Unknown variables are ignored; malformed numbers
// and booleans are errors.
func EnvOverlay(environ []string) (Config, error) {
	var over Config
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq <= len(EnvPrefix) {
			continue
		}
		key := kv[len(EnvPrefix):eq]
		val := strings.TrimSpace(kv[eq+1:])
		var err error
		switch key {
		case "ORDER":
			over.Order = val
		case "MIN_COUNT":
			over.MinCount, err = parseInt(val)
		case "MIN_LENGTH":
			over.MinLength, err = parseInt(val)
		case "CONTAINER":
			over.Container = val
		case "LEVEL":
			over.Level, err = parseInt(val)
		case "CHECK":
			over.Check, err = parseBool(val)
		case "ATOMIC":
			over.Atomic, err = parseBool(val)
		case "LOG_LEVEL":
			over.Logging.Level = val
		case "LOG_FORMAT":
			over.Logging.Format = val
		}
		if err != nil {
			return over, fmt.Errorf("%w: %s%s: %v", ErrInvalid, EnvPrefix, key, err)
		}
	}
	return over, nil
}

func copyInt(p *int) *int {
	v := *p
	return &v
}

func parseInt(s string) (*int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseBool(s string) (*bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Validate checks that cfg can be turned into an encoder and a container.
func Validate(cfg Config) error {
	if _, ok := wordpack.ParseOrder(cfg.Order); !ok {
		return fmt.Errorf("%w: order %q", ErrInvalid, cfg.Order)
	}
	if intValue(cfg.MinCount) < 0 || intValue(cfg.MinLength) < 0 {
		return fmt.Errorf("%w: min_count and min_length must not be negative", ErrInvalid)
	}
	if _, err := container.ParseKind(cfg.Container); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if cfg.ContainerLevel() < 0 {
		return fmt.Errorf("%w: level must not be negative", ErrInvalid)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging format %q", ErrInvalid, cfg.Logging.Format)
	}
	return nil
}

// Selector returns the dictionary selector described by cfg. cfg must be
// valid.
func (c Config) Selector() wordpack.Selector {
	order, _ := wordpack.ParseOrder(c.Order)
	return wordpack.RepeatSelector{
		MinCount:  intValue(c.MinCount),
		MinLength: intValue(c.MinLength),
		Order:     order,
	}
}

// ContainerKind returns the configured container. cfg must be valid.
func (c Config) ContainerKind() container.Kind {
	k, _ := container.ParseKind(c.Container)
	return k
}
