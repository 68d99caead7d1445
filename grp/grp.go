// Package grp queries the group database through the reentrant
// getgrnam_r/getgrgid_r interfaces.
package grp

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
)

//#include <stdlib.h>
//#include <sys/types.h>
//#include <grp.h>
//#include <unistd.h>
import "C"

// Group is one entry of the group database, copied out of the lookup
// buffer.
type Group struct {
	Name    string
	Passwd  string
	GID     uint32
	Members []string
}

const maxBufSize = 32768

func initBufSize() int {
	if n := C.sysconf(C._SC_GETGR_R_SIZE_MAX); n > 0 {
		return int(n)
	}
	return 1024
}

// Lookup finds the group database entry for the given name. It returns
// (nil, nil) when no entry matches.
func Lookup(name string) (*Group, error) {
	var out *Group
	err := ffi.PathString(name).WithCStr(func(s ffi.CStr) error {
		g, err := lookup(func(grp *C.struct_group, buf *C.char, size C.size_t, res **C.struct_group) C.int {
			return C.getgrnam_r((*C.char)(unsafe.Pointer(s.Ptr())), grp, buf, size, res)
		})
		out = g
		return err
	})
	return out, err
}

// LookupGID finds the group database entry for the given gid. It
// returns (nil, nil) when no entry matches.
func LookupGID(gid uint32) (*Group, error) {
	return lookup(func(grp *C.struct_group, buf *C.char, size C.size_t, res **C.struct_group) C.int {
		return C.getgrgid_r(C.gid_t(gid), grp, buf, size, res)
	})
}

func lookup(call func(*C.struct_group, *C.char, C.size_t, **C.struct_group) C.int) (*Group, error) {
	size := initBufSize()
	for {
		buf := (*C.char)(C.malloc(C.size_t(size)))

		var grp C.struct_group
		var res *C.struct_group
		rc := call(&grp, buf, C.size_t(size), &res)

		if rc == 0 {
			var out *Group
			if res != nil {
				out = copyGroup(res)
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

func copyGroup(g *C.struct_group) *Group {
	out := &Group{
		Name:   goString(g.gr_name),
		Passwd: goString(g.gr_passwd),
		GID:    uint32(g.gr_gid),
	}
	for mem := g.gr_mem; mem != nil && *mem != nil; mem = (**C.char)(unsafe.Add(unsafe.Pointer(mem), unsafe.Sizeof(*mem))) {
		out.Members = append(out.Members, C.GoString(*mem))
	}
	return out
}

func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}
