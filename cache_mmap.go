//go:build linux || darwin || freebsd || netbsd || openbsd

package xdgtheme

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile memory-maps path read-only. Empty files and mmap failures fall
// back to a plain read so callers see one code path either way.
func mapFile(path string) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, false, err
	}
	size := st.Size()
	if size == 0 {
		return nil, false, nil
	}

	buf, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		data, rerr := os.ReadFile(path)
		return data, false, rerr
	}
	return buf, true, nil
}

func unmapFile(buf []byte) error {
	return unix.Munmap(buf)
}
