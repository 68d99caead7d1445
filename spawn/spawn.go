// Package spawn wraps execve and the posix_spawn family. Argument and
// environment vectors are ffi.CStringVec values, keeping the pointer
// arrays handed to the OS under single-owner control.
package spawn

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
)

//#include <spawn.h>
//#include <signal.h>
//#include <unistd.h>
import "C"

// Environ builds an envp vector from the current process environment.
// The caller owns the result and must free it.
func Environ() (*ffi.CStringVec, error) {
	return ffi.CStringVecFromStrings(os.Environ())
}

// Exec replaces the current process image via execve. It returns only
// on failure.
func Exec(path ffi.Path, argv, envp *ffi.CStringVec) error {
	return path.WithCStr(func(s ffi.CStr) error {
		_, err := C.execve((*C.char)(unsafe.Pointer(s.Ptr())), (**C.char)(argv.Ptr()), (**C.char)(envp.Ptr()))
		return errnoOr(err, unix.EINVAL)
	})
}

// ExecP replaces the current process image via execvp, searching PATH
// for file and passing the current environment. It returns only on
// failure.
func ExecP(file ffi.Path, argv *ffi.CStringVec) error {
	return file.WithCStr(func(s ffi.CStr) error {
		_, err := C.execvp((*C.char)(unsafe.Pointer(s.Ptr())), (**C.char)(argv.Ptr()))
		return errnoOr(err, unix.EINVAL)
	})
}

// Spawn starts a child process via posix_spawn and returns its pid.
// fileActions and attr may be nil.
func Spawn(path ffi.Path, fileActions *FileActions, attr *Attr, argv, envp *ffi.CStringVec) (int, error) {
	return spawn(path, fileActions, attr, argv, envp, func(pid *C.pid_t, s *C.char, fa *C.posix_spawn_file_actions_t, a *C.posix_spawnattr_t, av, ev **C.char) C.int {
		return C.posix_spawn(pid, s, fa, a, av, ev)
	})
}

// SpawnP is Spawn with PATH search, via posix_spawnp.
func SpawnP(file ffi.Path, fileActions *FileActions, attr *Attr, argv, envp *ffi.CStringVec) (int, error) {
	return spawn(file, fileActions, attr, argv, envp, func(pid *C.pid_t, s *C.char, fa *C.posix_spawn_file_actions_t, a *C.posix_spawnattr_t, av, ev **C.char) C.int {
		return C.posix_spawnp(pid, s, fa, a, av, ev)
	})
}

func spawn(
	path ffi.Path, fileActions *FileActions, attr *Attr, argv, envp *ffi.CStringVec,
	call func(*C.pid_t, *C.char, *C.posix_spawn_file_actions_t, *C.posix_spawnattr_t, **C.char, **C.char) C.int,
) (int, error) {
	var pid C.pid_t
	err := path.WithCStr(func(s ffi.CStr) error {
		var fap *C.posix_spawn_file_actions_t
		if fileActions != nil {
			fap = fileActions.ptr()
		}
		var ap *C.posix_spawnattr_t
		if attr != nil {
			ap = attr.ptr()
		}
		// posix_spawn reports failure as a returned errno value, not
		// through the thread-local errno
		if rc := call(&pid, (*C.char)(unsafe.Pointer(s.Ptr())), fap, ap, (**C.char)(argv.Ptr()), (**C.char)(envp.Ptr())); rc != 0 {
			return unix.Errno(rc)
		}
		return nil
	})
	if err != nil {
		return -1, err
	}
	return int(pid), nil
}

func errnoOr(err error, fallback unix.Errno) error {
	if err != nil {
		return err
	}
	return fallback
}
