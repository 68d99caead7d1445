package fd

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Pipe returns the read and write ends of a new pipe with
// close-on-exec set. Darwin has no pipe2, so the flag is applied under
// ForkLock to keep the window closed against concurrent exec.
func Pipe() (*FileDesc, *FileDesc, error) {
	var p [2]int
	syscall.ForkLock.RLock()
	err := unix.Pipe(p[:])
	if err == nil {
		unix.CloseOnExec(p[0])
		unix.CloseOnExec(p[1])
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return nil, nil, err
	}
	return New(p[0]), New(p[1]), nil
}
