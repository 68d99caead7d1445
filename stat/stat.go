// Package stat wraps the stat family and models the file-type bits of
// st_mode as a typed mask.
package stat

import "golang.org/x/sys/unix"

// FileType is the S_IFMT portion of a file mode.
type FileType uint32

const (
	TypeFile    FileType = unix.S_IFREG
	TypeDir     FileType = unix.S_IFDIR
	TypeSymlink FileType = unix.S_IFLNK
	TypeSocket  FileType = unix.S_IFSOCK
	TypeFifo    FileType = unix.S_IFIFO
	TypeBlock   FileType = unix.S_IFBLK
	TypeChar    FileType = unix.S_IFCHR
)

// TypeOf extracts the file type bits from a raw st_mode value.
func TypeOf(mode uint32) FileType { return FileType(mode & unix.S_IFMT) }

func (t FileType) IsFile() bool    { return t == TypeFile }
func (t FileType) IsDir() bool     { return t == TypeDir }
func (t FileType) IsSymlink() bool { return t == TypeSymlink }
func (t FileType) IsSocket() bool  { return t == TypeSocket }
func (t FileType) IsFifo() bool    { return t == TypeFifo }
func (t FileType) IsBlock() bool   { return t == TypeBlock }
func (t FileType) IsChar() bool    { return t == TypeChar }

func (t FileType) String() string {
	switch t {
	case TypeFile:
		return "regular file"
	case TypeDir:
		return "directory"
	case TypeSymlink:
		return "symbolic link"
	case TypeSocket:
		return "socket"
	case TypeFifo:
		return "fifo"
	case TypeBlock:
		return "block device"
	case TypeChar:
		return "character device"
	}
	return "unknown"
}

// AtFlag modifies path resolution for the *at calls.
type AtFlag int

const (
	// SymlinkNoFollow makes the call operate on a symlink itself
	// rather than the file it refers to.
	SymlinkNoFollow AtFlag = unix.AT_SYMLINK_NOFOLLOW
)

// AtFdCwd makes the *at calls resolve relative paths against the
// current working directory.
const AtFdCwd = unix.AT_FDCWD

// Stat retrieves metadata for the file at path, following symlinks.
func Stat(path string) (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Stat(path, &st)
	return st, err
}

// Lstat retrieves metadata for the file at path without following a
// trailing symlink.
func Lstat(path string) (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Lstat(path, &st)
	return st, err
}

// Fstat retrieves metadata for the open descriptor fd.
func Fstat(fd int) (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Fstat(fd, &st)
	return st, err
}

// Fstatat retrieves metadata for path resolved relative to dirfd.
func Fstatat(dirfd int, path string, flags AtFlag) (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Fstatat(dirfd, path, &st, int(flags))
	return st, err
}
