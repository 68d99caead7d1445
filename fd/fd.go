// Package fd wraps raw file descriptors with ownership semantics and
// the transfer helpers shared by the rest of the module.
package fd

import (
	"golang.org/x/sys/unix"
)

// FileDesc owns a raw file descriptor and closes it at most once.
type FileDesc struct {
	fd int
}

// New wraps fd. The descriptor must be valid and not owned elsewhere.
func New(fd int) *FileDesc { return &FileDesc{fd: fd} }

// Fd returns the inner descriptor without transferring ownership. It
// must not be closed or consumed through this value; use IntoFd for
// that.
func (f *FileDesc) Fd() int { return f.fd }

// IntoFd releases ownership of the descriptor to the caller, who
// becomes responsible for closing it.
func (f *FileDesc) IntoFd() int {
	fd := f.fd
	f.fd = -1
	return fd
}

// Close closes the descriptor. A second Close reports EBADF from the
// OS rather than closing an unrelated descriptor.
func (f *FileDesc) Close() error {
	fd := f.fd
	f.fd = -1
	return unix.Close(fd)
}

// Read reads into buf once. EINTR is surfaced, not retried.
func (f *FileDesc) Read(buf []byte) (int, error) {
	return unix.Read(f.fd, buf)
}

// Write writes from buf once. EINTR is surfaced, not retried.
func (f *FileDesc) Write(buf []byte) (int, error) {
	return unix.Write(f.fd, buf)
}

// Pread reads into buf at the given offset without moving the file
// position.
func (f *FileDesc) Pread(buf []byte, offset int64) (int, error) {
	return unix.Pread(f.fd, buf, offset)
}

// Pwrite writes from buf at the given offset without moving the file
// position.
func (f *FileDesc) Pwrite(buf []byte, offset int64) (int, error) {
	return unix.Pwrite(f.fd, buf, offset)
}

// GetCloExec reports whether the close-on-exec flag is set.
func (f *FileDesc) GetCloExec() (bool, error) {
	flags, err := unix.FcntlInt(uintptr(f.fd), unix.F_GETFD, 0)
	if err != nil {
		return false, err
	}
	return flags&unix.FD_CLOEXEC != 0, nil
}

// SetCloExec sets or clears the close-on-exec flag.
func (f *FileDesc) SetCloExec(cloexec bool) error {
	flags, err := unix.FcntlInt(uintptr(f.fd), unix.F_GETFD, 0)
	if err != nil {
		return err
	}
	if cloexec {
		if flags&unix.FD_CLOEXEC != 0 {
			return nil
		}
		flags |= unix.FD_CLOEXEC
	} else {
		if flags&unix.FD_CLOEXEC == 0 {
			return nil
		}
		flags &^= unix.FD_CLOEXEC
	}
	_, err = unix.FcntlInt(uintptr(f.fd), unix.F_SETFD, flags)
	return err
}

// Dup duplicates the descriptor. The duplicate does not have the
// close-on-exec flag set.
func (f *FileDesc) Dup() (*FileDesc, error) {
	nfd, err := unix.Dup(f.fd)
	if err != nil {
		return nil, err
	}
	return New(nfd), nil
}

// DupCloExec duplicates the descriptor with close-on-exec set, using
// the lowest free descriptor number not less than minfd.
func (f *FileDesc) DupCloExec(minfd int) (*FileDesc, error) {
	nfd, err := unix.FcntlInt(uintptr(f.fd), unix.F_DUPFD_CLOEXEC, minfd)
	if err != nil {
		return nil, err
	}
	return New(nfd), nil
}

// IsTerminal reports whether the descriptor refers to a terminal.
func (f *FileDesc) IsTerminal() bool {
	_, err := unix.IoctlGetTermios(f.fd, ioctlTermiosGet)
	return err == nil
}
