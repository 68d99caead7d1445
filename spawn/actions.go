package spawn

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
)

//#include <sys/types.h>
//#include <spawn.h>
//#include <signal.h>
//
//// sigemptyset and sigaddset are macros on some libcs
//static void sigset_empty(sigset_t *set) { sigemptyset(set); }
//static void sigset_add(sigset_t *set, int sig) { sigaddset(set, sig); }
import "C"

// FileActions is a list of file operations performed in a spawned
// child, in the order they were added.
type FileActions struct {
	actions C.posix_spawn_file_actions_t
	freed   bool
}

// NewFileActions returns an empty file action list. The caller must
// free it after the spawn call.
func NewFileActions() (*FileActions, error) {
	fa := new(FileActions)
	if rc := C.posix_spawn_file_actions_init(&fa.actions); rc != 0 {
		return nil, unix.Errno(rc)
	}
	return fa, nil
}

func (fa *FileActions) ptr() *C.posix_spawn_file_actions_t {
	if fa.freed {
		panic("spawn: use of freed FileActions")
	}
	return &fa.actions
}

// AddOpen opens path at descriptor fd inside the child, with the
// given open flags and creation mode.
func (fa *FileActions) AddOpen(fd int, path ffi.Path, flags int, mode uint32) error {
	return path.WithCStr(func(s ffi.CStr) error {
		if rc := C.posix_spawn_file_actions_addopen(fa.ptr(), C.int(fd), (*C.char)(unsafe.Pointer(s.Ptr())), C.int(flags), C.mode_t(mode)); rc != 0 {
			return unix.Errno(rc)
		}
		return nil
	})
}

// AddClose closes descriptor fd inside the child.
func (fa *FileActions) AddClose(fd int) error {
	if rc := C.posix_spawn_file_actions_addclose(fa.ptr(), C.int(fd)); rc != 0 {
		return unix.Errno(rc)
	}
	return nil
}

// AddDup2 duplicates oldfd onto newfd inside the child, as dup2 would.
func (fa *FileActions) AddDup2(oldfd, newfd int) error {
	if rc := C.posix_spawn_file_actions_adddup2(fa.ptr(), C.int(oldfd), C.int(newfd)); rc != 0 {
		return unix.Errno(rc)
	}
	return nil
}

// Free releases the list. Freeing twice panics.
func (fa *FileActions) Free() {
	if fa.freed {
		panic("spawn: FileActions already freed")
	}
	C.posix_spawn_file_actions_destroy(&fa.actions)
	fa.freed = true
}

// AttrFlags selects which Attr fields take effect in the child.
type AttrFlags int

const (
	ResetIDs   AttrFlags = C.POSIX_SPAWN_RESETIDS
	SetPgroup  AttrFlags = C.POSIX_SPAWN_SETPGROUP
	SetSigDef  AttrFlags = C.POSIX_SPAWN_SETSIGDEF
	SetSigMask AttrFlags = C.POSIX_SPAWN_SETSIGMASK
)

// Attr holds spawn attributes for posix_spawn.
type Attr struct {
	attr  C.posix_spawnattr_t
	freed bool
}

// NewAttr returns an empty attribute set. The caller must free it
// after the spawn call.
func NewAttr() (*Attr, error) {
	a := new(Attr)
	if rc := C.posix_spawnattr_init(&a.attr); rc != 0 {
		return nil, unix.Errno(rc)
	}
	return a, nil
}

func (a *Attr) ptr() *C.posix_spawnattr_t {
	if a.freed {
		panic("spawn: use of freed Attr")
	}
	return &a.attr
}

// SetFlags selects which attributes take effect.
func (a *Attr) SetFlags(flags AttrFlags) error {
	if rc := C.posix_spawnattr_setflags(a.ptr(), C.short(flags)); rc != 0 {
		return unix.Errno(rc)
	}
	return nil
}

// SetPgroup sets the process group for the child; 0 makes the child's
// pid its process group. Takes effect with the SetPgroup flag.
func (a *Attr) SetPgroup(pgroup int) error {
	if rc := C.posix_spawnattr_setpgroup(a.ptr(), C.pid_t(pgroup)); rc != 0 {
		return unix.Errno(rc)
	}
	return nil
}

// SetSigMask sets the child's initial signal mask to exactly the given
// signals. Takes effect with the SetSigMask flag.
func (a *Attr) SetSigMask(signals ...unix.Signal) error {
	set := sigset(signals)
	if rc := C.posix_spawnattr_setsigmask(a.ptr(), &set); rc != 0 {
		return unix.Errno(rc)
	}
	return nil
}

// SetSigDefault restores the default disposition of the given signals
// in the child. Takes effect with the SetSigDef flag.
func (a *Attr) SetSigDefault(signals ...unix.Signal) error {
	set := sigset(signals)
	if rc := C.posix_spawnattr_setsigdefault(a.ptr(), &set); rc != 0 {
		return unix.Errno(rc)
	}
	return nil
}

// Free releases the attribute set. Freeing twice panics.
func (a *Attr) Free() {
	if a.freed {
		panic("spawn: Attr already freed")
	}
	C.posix_spawnattr_destroy(&a.attr)
	a.freed = true
}

func sigset(signals []unix.Signal) C.sigset_t {
	var set C.sigset_t
	C.sigset_empty(&set)
	for _, s := range signals {
		C.sigset_add(&set, C.int(s))
	}
	return set
}
