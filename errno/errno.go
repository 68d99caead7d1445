// Package errno exposes the calling thread's last OS error.
//
// The errno concept is per OS thread. A goroutine reads a meaningful
// value only while locked to its thread (runtime.LockOSThread) with no
// intervening call that may clobber it; the accessors here never cache
// across calls. Most code should instead use the error values returned
// directly by the wrappers in this module, which capture errno at the
// call site.
package errno

import (
	"errors"

	"golang.org/x/sys/unix"
)

//#include <errno.h>
//static int last_errno(void) { return errno; }
//static void set_errno(int v) { errno = v; }
import "C"

// Last returns the current thread-local errno value.
func Last() unix.Errno { return unix.Errno(C.last_errno()) }

// Set overwrites the current thread-local errno value.
func Set(e unix.Errno) { C.set_errno(C.int(e)) }

// Of extracts the errno value carried by err, unwrapping as needed.
// It returns 0 if err carries none.
func Of(err error) unix.Errno {
	var e unix.Errno
	if errors.As(err, &e) {
		return e
	}
	return 0
}
