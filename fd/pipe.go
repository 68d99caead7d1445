//go:build linux || freebsd || netbsd || openbsd

package fd

import "golang.org/x/sys/unix"

// Pipe returns the read and write ends of a new pipe, both with
// close-on-exec set atomically.
func Pipe() (*FileDesc, *FileDesc, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_CLOEXEC); err != nil {
		return nil, nil, err
	}
	return New(p[0]), New(p[1]), nil
}
