// Package dirent implements directory streams over the libc
// opendir/readdir interface.
package dirent

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
	"github.com/cptpcrd/slibc-sub000/stat"
)

//#include <dirent.h>
//#include <errno.h>
//
//static struct dirent *readdir_eno(DIR *d, int *eno) {
//	errno = 0;
//	struct dirent *ent = readdir(d);
//	*eno = errno;
//	return ent;
//}
import "C"

// DirFileType is the d_type of a directory entry, mirroring DT_*.
type DirFileType uint8

const (
	TypeUnknown DirFileType = C.DT_UNKNOWN
	TypeFifo    DirFileType = C.DT_FIFO
	TypeChar    DirFileType = C.DT_CHR
	TypeDir     DirFileType = C.DT_DIR
	TypeBlock   DirFileType = C.DT_BLK
	TypeFile    DirFileType = C.DT_REG
	TypeSymlink DirFileType = C.DT_LNK
	TypeSocket  DirFileType = C.DT_SOCK
)

// FileType converts the entry type to the equivalent stat file type
// mask. TypeUnknown, and any value the OS invents beyond DT_*, map to
// zero.
func (t DirFileType) FileType() stat.FileType {
	switch t {
	case TypeFile:
		return stat.TypeFile
	case TypeDir:
		return stat.TypeDir
	case TypeSymlink:
		return stat.TypeSymlink
	case TypeSocket:
		return stat.TypeSocket
	case TypeFifo:
		return stat.TypeFifo
	case TypeBlock:
		return stat.TypeBlock
	case TypeChar:
		return stat.TypeChar
	}
	return 0
}

// Dirent is one entry read from a directory stream. The OS yields
// entries for "." and ".." like any other name.
type Dirent struct {
	Ino  uint64
	Type DirFileType
	Name string
}

// Dir is an open directory stream.
type Dir struct {
	d *C.DIR
}

// Open opens a directory stream for the directory at path.
func Open(path ffi.Path) (*Dir, error) {
	var d *C.DIR
	err := path.WithCStr(func(s ffi.CStr) error {
		dp, err := C.opendir((*C.char)(unsafe.Pointer(s.Ptr())))
		if dp == nil {
			return errnoOr(err, unix.EINVAL)
		}
		d = dp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Dir{d: d}, nil
}

// FdOpen opens a directory stream for the directory open at fd. The
// descriptor is consumed by the stream and closed with it; it must not
// be used elsewhere afterwards.
func FdOpen(fd int) (*Dir, error) {
	dp, err := C.fdopendir(C.int(fd))
	if dp == nil {
		return nil, errnoOr(err, unix.EINVAL)
	}
	return &Dir{d: dp}, nil
}

func (d *Dir) ptr() *C.DIR {
	if d.d == nil {
		panic("dirent: use of closed Dir")
	}
	return d.d
}

// Next returns the next entry in the stream, or (nil, nil) at the end
// of the directory.
func (d *Dir) Next() (*Dirent, error) {
	var eno C.int
	ent := C.readdir_eno(d.ptr(), &eno)
	if ent == nil {
		if eno != 0 {
			return nil, unix.Errno(eno)
		}
		return nil, nil
	}
	return &Dirent{
		Ino:  entryIno(ent),
		Type: DirFileType(ent.d_type),
		Name: C.GoString(&ent.d_name[0]),
	}, nil
}

// Rewind resets the stream to the start of the directory.
func (d *Dir) Rewind() { C.rewinddir(d.ptr()) }

// Fd returns the descriptor used internally by the stream. It remains
// owned by the stream.
func (d *Dir) Fd() int { return int(C.dirfd(d.ptr())) }

// Stat retrieves metadata for the directory the stream reads.
func (d *Dir) Stat() (unix.Stat_t, error) { return stat.Fstat(d.Fd()) }

// Close releases the stream and its descriptor. Closing a Dir twice
// is a contract violation and panics.
func (d *Dir) Close() error {
	dp := d.d
	if dp == nil {
		panic("dirent: Dir already closed")
	}
	d.d = nil
	if rc, err := C.closedir(dp); rc != 0 {
		return errnoOr(err, unix.EINVAL)
	}
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
