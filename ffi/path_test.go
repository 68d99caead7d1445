package ffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
)

func TestPathStringWithCStr(t *testing.T) {
	var got []byte
	calls := 0
	err := ffi.PathString("abc/def").WithCStr(func(s ffi.CStr) error {
		calls++
		got = append([]byte(nil), s...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []byte("abc/def\x00"), got)
}

func TestPathStringMidNul(t *testing.T) {
	calls := 0
	err := ffi.PathString("abc\x00def").WithCStr(func(ffi.CStr) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, unix.EINVAL)
	assert.Equal(t, 0, calls, "closure must not run on invalid input")

	var ne *ffi.NulError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 3, ne.Index)
}

func TestPathStringBytes(t *testing.T) {
	assert.Equal(t, []byte("abc/def"), ffi.PathString("abc/def").Bytes())
	assert.Nil(t, ffi.PathString("").Bytes())
}

func TestCStringAsPath(t *testing.T) {
	cs := ffi.MustCString("abc/def")
	defer cs.Free()

	var p ffi.Path = cs
	assert.Equal(t, []byte("abc/def"), p.Bytes())

	err := p.WithCStr(func(s ffi.CStr) error {
		assert.Equal(t, []byte("abc/def\x00"), []byte(s))
		// zero-copy passthrough: the view aliases the CString's buffer
		assert.Equal(t, &cs.BytesWithNul()[0], s.Ptr())
		return nil
	})
	require.NoError(t, err)
}

func TestWithCStrPropagates(t *testing.T) {
	err := ffi.PathString("p").WithCStr(func(ffi.CStr) error { return unix.ENOENT })
	assert.ErrorIs(t, err, unix.ENOENT)
}
