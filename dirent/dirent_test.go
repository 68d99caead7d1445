package dirent_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/dirent"
	"github.com/cptpcrd/slibc-sub000/ffi"
	"github.com/cptpcrd/slibc-sub000/stat"
)

func collect(t *testing.T, d *dirent.Dir) map[string]*dirent.Dirent {
	t.Helper()

	entries := make(map[string]*dirent.Dirent)
	for {
		ent, err := d.Next()
		require.NoError(t, err)
		if ent == nil {
			return entries
		}
		entries[ent.Name] = ent
	}
}

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.Symlink("file", filepath.Join(dir, "link")))

	d, err := dirent.Open(ffi.PathString(dir))
	require.NoError(t, err)
	defer d.Close()

	entries := collect(t, d)
	require.Contains(t, entries, ".")
	require.Contains(t, entries, "..")
	require.Contains(t, entries, "file")
	require.Contains(t, entries, "sub")
	require.Contains(t, entries, "link")
	assert.Len(t, entries, 5)

	// the reported inode of "." must match an independent stat of the
	// same directory
	st, err := stat.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, st.Ino, entries["."].Ino)

	dst, err := d.Stat()
	require.NoError(t, err)
	assert.Equal(t, st.Ino, dst.Ino)

	if typ := entries["sub"].Type; typ != dirent.TypeUnknown {
		assert.Equal(t, dirent.TypeDir, typ)
	}
	if typ := entries["link"].Type; typ != dirent.TypeUnknown {
		assert.Equal(t, dirent.TypeSymlink, typ)
	}
}

func TestRewind(t *testing.T) {
	d, err := dirent.Open(ffi.PathString("."))
	require.NoError(t, err)
	defer d.Close()

	first := collect(t, d)
	require.NotEmpty(t, first)

	again, err := d.Next()
	require.NoError(t, err)
	assert.Nil(t, again, "stream is exhausted")

	d.Rewind()
	second := collect(t, d)
	assert.Equal(t, len(first), len(second))
}

func TestFdOpen(t *testing.T) {
	fd, err := unix.Open(".", unix.O_RDONLY|unix.O_DIRECTORY, 0)
	require.NoError(t, err)

	d, err := dirent.FdOpen(fd)
	require.NoError(t, err)
	defer d.Close()

	entries := collect(t, d)
	assert.Contains(t, entries, ".")
}

func TestOpenErrors(t *testing.T) {
	_, err := dirent.Open(ffi.PathString(filepath.Join(t.TempDir(), "missing")))
	assert.ErrorIs(t, err, unix.ENOENT)

	_, err = dirent.Open(ffi.PathString("bad\x00path"))
	assert.ErrorIs(t, err, unix.EINVAL)
}

func TestCloseTwice(t *testing.T) {
	d, err := dirent.Open(ffi.PathString("."))
	require.NoError(t, err)
	require.NoError(t, d.Close())
	assert.PanicsWithValue(t, "dirent: Dir already closed", func() { _ = d.Close() })
}

func TestFileTypeConversion(t *testing.T) {
	testCases := []struct {
		in   dirent.DirFileType
		want stat.FileType
	}{
		{dirent.TypeFile, stat.TypeFile},
		{dirent.TypeDir, stat.TypeDir},
		{dirent.TypeSymlink, stat.TypeSymlink},
		{dirent.TypeSocket, stat.TypeSocket},
		{dirent.TypeFifo, stat.TypeFifo},
		{dirent.TypeBlock, stat.TypeBlock},
		{dirent.TypeChar, stat.TypeChar},
		{dirent.TypeUnknown, 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.in.FileType(), "%d", tc.in)
	}
}
