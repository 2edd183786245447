//go:build linux || darwin

package shmring

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func shmPath(name string) string {
	// name always starts with '/' (enforced in newSegment); shm_open forbids
	// further slashes, which also keeps this a single path component.
	return shmBaseDir() + name
}

// platformOpenOrCreate tries create-exclusive first, falling back to
// attaching an existing object.
func platformOpenOrCreate(name string) (fd int, created bool, err error) {
	if err := ensureShmBaseDir(); err != nil {
		return -1, false, err
	}
	path := shmPath(name)
	fd, err = unix.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_RDWR|unix.O_CLOEXEC, 0o644)
	if err == nil {
		return fd, true, nil
	}
	if !errors.Is(err, unix.EEXIST) {
		return -1, false, err
	}
	fd, err = unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return -1, false, err
	}
	return fd, false, nil
}

func platformFtruncate(fd int, size int64) error {
	return unix.Ftruncate(fd, size)
}

func platformMmap(fd int, size int) ([]byte, error) {
	return unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func platformMunmap(b []byte) error {
	return unix.Munmap(b)
}

func platformClose(fd int) error {
	return unix.Close(fd)
}

func platformUnlink(name string) error {
	return unix.Unlink(shmPath(name))
}

func platformIsNotExist(err error) bool {
	return errors.Is(err, unix.ENOENT) || errors.Is(err, os.ErrNotExist)
}
