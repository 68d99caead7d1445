package ffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/ffi"
)

func TestCStringVecNew(t *testing.T) {
	for _, v := range []*ffi.CStringVec{
		ffi.NewCStringVec(),
		ffi.CStringVecWithCap(0),
		ffi.CStringVecWithCap(10),
	} {
		assert.Equal(t, 1, v.Len())
		assert.GreaterOrEqual(t, v.Cap(), 1)
		v.Free()
	}
}

func TestCStringVecPush(t *testing.T) {
	v := ffi.NewCStringVec()
	defer v.Free()

	v.Push(ffi.MustCString("abc"))
	v.Push(ffi.MustCString("def"))

	require.Equal(t, 3, v.Len())
	assert.Equal(t, []byte("abc"), v.At(0))
	assert.Equal(t, []byte("def"), v.At(1))
	assert.Panics(t, func() { v.At(2) }, "the sentinel cannot be addressed")
}

func TestCStringVecReplace(t *testing.T) {
	v := ffi.NewCStringVec()
	defer v.Free()
	v.Push(ffi.MustCString("abc"))
	v.Push(ffi.MustCString("def"))

	v.Replace(1, ffi.MustCString("ghi"))
	assert.Equal(t, []byte("abc"), v.At(0))
	assert.Equal(t, []byte("ghi"), v.At(1))

	v.Replace(0, ffi.MustCString("jkl"))
	assert.Equal(t, []byte("jkl"), v.At(0))
	assert.Equal(t, []byte("ghi"), v.At(1))
}

func TestCStringVecReplaceOutOfBounds(t *testing.T) {
	v := ffi.NewCStringVec()
	defer v.Free()
	v.Push(ffi.MustCString("abc"))

	for _, i := range []int{-1, 1, 2, 100} {
		i := i
		assert.Panics(t, func() { v.Replace(i, ffi.MustCString("x")) }, "index %d", i)
	}
}

func TestCStringVecInsertRemove(t *testing.T) {
	v := ffi.NewCStringVec()
	defer v.Free()

	v.Insert(0, ffi.MustCString("abc"))
	v.Push(ffi.MustCString("def"))
	v.Insert(1, ffi.MustCString("ghi"))

	require.Equal(t, 4, v.Len())
	assert.Equal(t, []byte("abc"), v.At(0))
	assert.Equal(t, []byte("ghi"), v.At(1))
	assert.Equal(t, []byte("def"), v.At(2))

	got := v.Remove(1)
	require.NotNil(t, got)
	assert.Equal(t, "ghi", got.String())
	got.Free()

	require.Equal(t, 3, v.Len())
	assert.Equal(t, []byte("abc"), v.At(0))
	assert.Equal(t, []byte("def"), v.At(1))

	assert.Panics(t, func() { v.Remove(2) })
	assert.Panics(t, func() { v.Insert(3, ffi.MustCString("x")) })
}

func TestCStringVecClone(t *testing.T) {
	v := ffi.NewCStringVec()
	defer v.Free()
	v.Push(ffi.MustCString("abc"))
	v.Push(ffi.MustCString("def"))

	c := v.Clone()
	require.Equal(t, v.Len(), c.Len())
	assert.Equal(t, []byte("abc"), c.At(0))
	assert.Equal(t, []byte("def"), c.At(1))

	// mutating the clone must not affect the original
	c.Replace(0, ffi.MustCString("zzz"))
	assert.Equal(t, []byte("zzz"), c.At(0))
	assert.Equal(t, []byte("abc"), v.At(0))
	c.Free()

	assert.Equal(t, []byte("abc"), v.At(0))
	assert.Equal(t, []byte("def"), v.At(1))
}

func TestCStringVecSliceRoundTrip(t *testing.T) {
	v := ffi.NewCStringVec()
	v.Push(ffi.MustCString("abc"))
	v.Push(ffi.MustCString("def"))

	raw := v.IntoSlice()
	require.Len(t, raw, 3)
	assert.Nil(t, raw[2])
	assert.Panics(t, func() { v.Len() }, "decomposed vector must not be used")

	back := ffi.CStringVecFromSlice(raw)
	defer back.Free()
	require.Equal(t, 3, back.Len())
	assert.Equal(t, []byte("abc"), back.At(0))
	assert.Equal(t, []byte("def"), back.At(1))
}

func TestCStringVecFromStrings(t *testing.T) {
	v, err := ffi.CStringVecFromStrings([]string{"abc", "def"})
	require.NoError(t, err)
	defer v.Free()
	require.Equal(t, 3, v.Len())
	assert.Equal(t, []byte("abc"), v.At(0))
	assert.Equal(t, []byte("def"), v.At(1))

	_, err = ffi.CStringVecFromStrings([]string{"abc", "d\x00f"})
	assert.ErrorIs(t, err, unix.EINVAL)
}

func TestCStringVecReserve(t *testing.T) {
	v := ffi.NewCStringVec()
	defer v.Free()

	v.Reserve(30)
	assert.GreaterOrEqual(t, v.Cap(), 31)
	assert.Equal(t, 1, v.Len())
}

func TestCStringVecFreeTwice(t *testing.T) {
	v := ffi.NewCStringVec()
	v.Free()
	assert.PanicsWithValue(t, "ffi: use of freed CStringVec", v.Free)
}
