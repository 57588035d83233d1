//go:build !windows

package fsio

import "os"

// osReplace renames tmpPath over dest, which is atomic on POSIX systems.
func osReplace(tmpPath, dest string) error {
	return os.Rename(tmpPath, dest)
}

// syncDir fsyncs dir so the rename survives a crash.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
