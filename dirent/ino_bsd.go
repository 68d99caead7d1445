//go:build darwin || freebsd || netbsd || openbsd

package dirent

//#include <dirent.h>
import "C"

// The BSD dirent calls its inode field d_fileno; the d_ino spelling is
// a preprocessor alias invisible to cgo struct access.
func entryIno(ent *C.struct_dirent) uint64 { return uint64(ent.d_fileno) }
