//go:build linux

package shmring

// shmBaseDir is where POSIX shm_open-style names actually live on Linux;
// this mirrors glibc's own shm_open implementation, which is a thin
// wrapper over open() on a tmpfs mount.
func shmBaseDir() string { return "/dev/shm" }

// ensureShmBaseDir is a no-op on Linux: /dev/shm is provided by the kernel.
func ensureShmBaseDir() error { return nil }
