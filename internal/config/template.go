package config

import (
	"encoding/json"
	"errors"
	"os"
)

// Template returns a configuration with every field spelled out, suitable
// as a starting point for a config file.
func Template() Config {
	cfg := Defaults()
	check, atomic := true, true
	cfg.Check = &check
	cfg.Atomic = &atomic
	cfg.MinCount, cfg.MinLength, cfg.Level = new(int), new(int), new(int)
	return cfg
}

// WriteTemplate writes Template as indented JSON to path. An existing file
// is left alone and os.ErrExist is returned.
func WriteTemplate(path string) error {
	b, err := json.MarshalIndent(Template(), "", "  ")
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return os.ErrExist
		}
		return err
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
