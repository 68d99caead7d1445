// Package pwd queries the user database through the reentrant
// getpwnam_r/getpwuid_r interfaces. The non-reentrant variants, which
// return views into a static thread-local buffer, are deliberately not
// bound.
package pwd

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
)

//#include <stdlib.h>
//#include <sys/types.h>
//#include <pwd.h>
//#include <unistd.h>
import "C"

// Passwd is one entry of the user database, copied out of the lookup
// buffer.
type Passwd struct {
	Name   string
	Passwd string
	UID    uint32
	GID    uint32
	Gecos  string
	Dir    string
	Shell  string
}

// maxBufSize caps the retry growth for ERANGE from the _r calls.
const maxBufSize = 32768

func initBufSize() int {
	if n := C.sysconf(C._SC_GETPW_R_SIZE_MAX); n > 0 {
		return int(n)
	}
	return 1024
}

// Lookup finds the user database entry for the given name. It returns
// (nil, nil) when no entry matches.
func Lookup(name string) (*Passwd, error) {
	var out *Passwd
	err := ffi.PathString(name).WithCStr(func(s ffi.CStr) error {
		p, err := lookup(func(pwd *C.struct_passwd, buf *C.char, size C.size_t, res **C.struct_passwd) C.int {
			return C.getpwnam_r((*C.char)(unsafe.Pointer(s.Ptr())), pwd, buf, size, res)
		})
		out = p
		return err
	})
	return out, err
}

// LookupUID finds the user database entry for the given uid. It
// returns (nil, nil) when no entry matches.
func LookupUID(uid uint32) (*Passwd, error) {
	return lookup(func(pwd *C.struct_passwd, buf *C.char, size C.size_t, res **C.struct_passwd) C.int {
		return C.getpwuid_r(C.uid_t(uid), pwd, buf, size, res)
	})
}

func lookup(call func(*C.struct_passwd, *C.char, C.size_t, **C.struct_passwd) C.int) (*Passwd, error) {
	size := initBufSize()
	for {
		buf := (*C.char)(C.malloc(C.size_t(size)))

		var pwd C.struct_passwd
		var res *C.struct_passwd
		rc := call(&pwd, buf, C.size_t(size), &res)

		if rc == 0 {
			var out *Passwd
			if res != nil {
				out = copyPasswd(res)
			}
			C.free(unsafe.Pointer(buf))
			return out, nil
		}
		C.free(unsafe.Pointer(buf))

		if unix.Errno(rc) == unix.ERANGE && size < maxBufSize {
			size *= 2
			if size > maxBufSize {
				size = maxBufSize
			}
			continue
		}
		return nil, unix.Errno(rc)
	}
}

func copyPasswd(p *C.struct_passwd) *Passwd {
	return &Passwd{
		Name:   goString(p.pw_name),
		Passwd: goString(p.pw_passwd),
		UID:    uint32(p.pw_uid),
		GID:    uint32(p.pw_gid),
		Gecos:  goString(p.pw_gecos),
		Dir:    goString(p.pw_dir),
		Shell:  goString(p.pw_shell),
	}
}

func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}
