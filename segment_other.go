//go:build !linux && !darwin

package shmring

// platformOpenOrCreate and friends have no backend outside linux/darwin:
// there is no portable named-shared-memory primitive in the standard
// library or golang.org/x/sys for, e.g., plan9 or js/wasm. Every entry
// point returns ErrUnsupportedPlatform, mirroring go-eventloop's
// poller_windows.go stub-file pattern for platforms a given backend does
// not cover.

func platformOpenOrCreate(name string) (fd int, created bool, err error) {
	return -1, false, ErrUnsupportedPlatform
}

func platformFtruncate(fd int, size int64) error { return ErrUnsupportedPlatform }

func platformMmap(fd int, size int) ([]byte, error) { return nil, ErrUnsupportedPlatform }

func platformMunmap(b []byte) error { return ErrUnsupportedPlatform }

func platformClose(fd int) error { return ErrUnsupportedPlatform }

func platformUnlink(name string) error { return ErrUnsupportedPlatform }

func platformIsNotExist(err error) bool { return false }
