package cpmblob

import (
	"os"
	"path/filepath"
)

// KeepMode records the permission bits of the file at key under dir
// and returns a func that restores them. Writes through a bucket
// replace the file, so it otherwise takes on the default mode.
// If the file does not exist, the returned func does nothing.
func KeepMode(dir, key string) func() error {
	name := filepath.Join(dir, filepath.FromSlash(key))

	fi, err := os.Stat(name)
	if err != nil {
		return func() error { return nil }
	}

	return func() error {
		return os.Chmod(name, fi.Mode().Perm())
	}
}
