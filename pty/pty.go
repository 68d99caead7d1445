//go:build linux || darwin

// Package pty opens pseudoterminals and resolves terminal device
// names. Only the reentrant _r name lookups are bound; the static
// buffer variants (ptsname, ttyname) are thread-unsafe and have no
// place here.
package pty

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/fd"
)

//#cgo linux CFLAGS: -D_GNU_SOURCE
//#include <stdlib.h>
//#include <unistd.h>
import "C"

// Openpty opens a pseudoterminal pair. winsize, when non-nil, sets the
// initial window size of the slave side.
func Openpty(winsize *unix.Winsize) (master, slave *fd.FileDesc, err error) {
	m, s, err := openpty(winsize)
	if err != nil {
		return nil, nil, err
	}
	return fd.New(m), fd.New(s), nil
}

// Ptsname returns the name of the slave side of the pseudoterminal
// whose master is open at f.
func Ptsname(f *fd.FileDesc) (string, error) {
	buf := make([]byte, 128)
	for {
		rc, err := C.ptsname_r(C.int(f.Fd()), (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)))
		switch e := callErrno(int(rc), err); e {
		case 0:
			return unix.ByteSliceToString(buf), nil
		case unix.ERANGE:
			buf = make([]byte, len(buf)*2)
		default:
			return "", e
		}
	}
}

// TTYName returns the pathname of the terminal open at f.
func TTYName(f *fd.FileDesc) (string, error) {
	buf := make([]byte, 128)
	for {
		rc, err := C.ttyname_r(C.int(f.Fd()), (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)))
		switch e := callErrno(int(rc), err); e {
		case 0:
			return unix.ByteSliceToString(buf), nil
		case unix.ERANGE:
			buf = make([]byte, len(buf)*2)
		default:
			return "", e
		}
	}
}

// LoginTTY prepares for a login on the terminal open at f: it starts a
// new session, makes the terminal the controlling terminal and the
// standard input/output/error of the process, then closes f.
func LoginTTY(f *fd.FileDesc) error {
	if err := loginTTY(f.Fd()); err != nil {
		return err
	}
	// login_tty closed the descriptor; drop ownership
	f.IntoFd()
	return nil
}

// errnoOr returns the errno captured by a cgo call, falling back to
// fallback when the call failed without setting one.
func errnoOr(err error, fallback unix.Errno) error {
	if err != nil {
		return err
	}
	return fallback
}

// callErrno normalizes the two error conventions of the _r functions:
// a non-zero return that is itself an errno value, or -1 with errno
// set (captured by cgo in err).
func callErrno(rc int, err error) unix.Errno {
	if rc == 0 {
		return 0
	}
	if e, ok := err.(unix.Errno); ok && e != 0 {
		return e
	}
	return unix.Errno(rc)
}
