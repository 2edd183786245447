//go:build darwin

package shmring

import (
	"os"
	"path/filepath"
)

// shmBaseDir is where named segments live on Darwin. /dev/shm does not
// exist on macOS (shm_open there is backed by a private, unexported
// namespace with no stable filesystem path), so named segments instead
// live under a fixed subdirectory of the system temp directory, which is
// stable and shared across processes of the same user session.
func shmBaseDir() string { return filepath.Join(os.TempDir(), "go-shmring") }

// ensureShmBaseDir creates shmBaseDir if it does not already exist.
func ensureShmBaseDir() error {
	return os.MkdirAll(shmBaseDir(), 0o755)
}
