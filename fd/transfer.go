package fd

import "golang.org/x/sys/unix"

// IgnoringEINTR makes a function call and repeats it if it returns an
// EINTR error. Signal delivery can interrupt slow syscalls even when
// every handler is installed with SA_RESTART; callers that cannot
// surface EINTR wrap the call in this.
func IgnoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}

// WriteAll writes all of buf, continuing across partial writes and
// retrying on EINTR. A write that returns without progress fails with
// EIO.
func (f *FileDesc) WriteAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Write(f.fd, buf)
		switch {
		case err == unix.EINTR:
		case err != nil:
			return err
		case n == 0:
			return unix.EIO
		default:
			buf = buf[n:]
		}
	}
	return nil
}

// ReadFull reads until buf is full, continuing across partial reads
// and retrying on EINTR. End of file before buf is full fails with
// EIO.
func (f *FileDesc) ReadFull(buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Read(f.fd, buf)
		switch {
		case err == unix.EINTR:
		case err != nil:
			return err
		case n == 0:
			return unix.EIO
		default:
			buf = buf[n:]
		}
	}
	return nil
}
