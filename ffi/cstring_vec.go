package ffi

import (
	"fmt"
	"unsafe"
)

//#include <stdlib.h>
//#include <string.h>
import "C"

// CStringVec owns a NULL-terminated array of C string pointers, as
// consumed by the argv and envp parameters of execve(2) and
// posix_spawn(3).
//
// Invariants:
//
//   - The backing array is never empty.
//   - The last element is always the NULL sentinel.
//   - Every non-NULL element is a pointer leaked from CString.IntoRaw.
//
// Only the unsafe CStringVecFromSlice escape hatch can introduce a
// NULL element anywhere other than the last slot.
//
// Clone deep-copies every element. Free releases every element and
// detaches the backing array; freeing twice panics.
type CStringVec struct {
	v []*C.char
}

// NewCStringVec returns a vector containing only the NULL sentinel.
func NewCStringVec() *CStringVec {
	return &CStringVec{v: []*C.char{nil}}
}

// CStringVecWithCap returns a vector containing only the NULL sentinel,
// with capacity for n elements total (including the sentinel).
func CStringVecWithCap(n int) *CStringVec {
	if n < 1 {
		n = 1
	}
	return &CStringVec{v: make([]*C.char, 1, n)}
}

// CStringVecFromStrings builds a vector from ss in order. If any
// element contains an interior NUL, everything allocated so far is
// freed and the *NulError is returned.
func CStringVecFromStrings(ss []string) (*CStringVec, error) {
	v := CStringVecWithCap(len(ss) + 1)
	for _, s := range ss {
		cs, err := NewCString([]byte(s))
		if err != nil {
			v.Free()
			return nil, err
		}
		v.Push(cs)
	}
	return v, nil
}

// CStringVecFromSlice wraps a raw pointer array as a CStringVec.
//
// The caller must guarantee that s satisfies the invariants listed on
// CStringVec, and that every non-NULL element is an unaliased malloc
// allocation.
func CStringVecFromSlice(s []unsafe.Pointer) *CStringVec {
	return &CStringVec{v: unsafe.Slice((**C.char)(unsafe.Pointer(unsafe.SliceData(s))), len(s))}
}

func (v *CStringVec) slice() []*C.char {
	if v.v == nil {
		panic("ffi: use of freed CStringVec")
	}
	return v.v
}

func (v *CStringVec) checkIndex(i int) {
	if i < 0 || i >= len(v.slice())-1 {
		panic(fmt.Sprintf("ffi: index %d out of bounds for CStringVec of length %d (the trailing NULL cannot be addressed)", i, len(v.v)))
	}
}

// Len returns the number of elements, including the NULL sentinel.
func (v *CStringVec) Len() int { return len(v.slice()) }

// Cap returns the number of elements (including the sentinel) the
// vector can hold without resizing.
func (v *CStringVec) Cap() int { return cap(v.slice()) }

// Reserve grows the backing array so that n more elements can be
// pushed without resizing. It has no observable effect on contents.
func (v *CStringVec) Reserve(n int) {
	s := v.slice()
	if cap(s)-len(s) < n {
		nv := make([]*C.char, len(s), len(s)+n)
		copy(nv, s)
		v.v = nv
	}
}

// Push appends s immediately before the NULL sentinel, consuming it.
func (v *CStringVec) Push(s *CString) {
	_ = v.slice()
	v.v = append(v.v, nil)
	v.v[len(v.v)-2] = (*C.char)(s.IntoRaw())
}

// Replace swaps in s at index i and frees the previous occupant of the
// slot. Addressing the sentinel slot or beyond panics.
func (v *CStringVec) Replace(i int, s *CString) {
	v.checkIndex(i)
	old := v.v[i]
	v.v[i] = (*C.char)(s.IntoRaw())
	if old != nil {
		C.free(unsafe.Pointer(old))
	}
}

// Insert places s at index i, shifting later elements (and the
// sentinel) forward. Inserting after the sentinel panics.
func (v *CStringVec) Insert(i int, s *CString) {
	if i < 0 || i >= len(v.slice()) {
		panic(fmt.Sprintf("ffi: index %d out of bounds for CStringVec of length %d (cannot insert after the trailing NULL)", i, len(v.v)))
	}
	v.v = append(v.v, nil)
	copy(v.v[i+1:], v.v[i:])
	v.v[i] = (*C.char)(s.IntoRaw())
}

// Remove takes the element at index i out of the vector and returns
// ownership of it to the caller. It returns nil if the slot held a
// NULL pointer introduced via CStringVecFromSlice. Removing the
// sentinel panics.
func (v *CStringVec) Remove(i int) *CString {
	v.checkIndex(i)
	p := v.v[i]
	copy(v.v[i:], v.v[i+1:])
	v.v = v.v[:len(v.v)-1]
	if p == nil {
		return nil
	}
	return CStringFromRaw(unsafe.Pointer(p))
}

// At returns a borrowed NUL-trimmed view of the element at index i, or
// nil if the slot holds a NULL pointer. The view is valid until the
// slot is replaced or the vector is freed.
func (v *CStringVec) At(i int) []byte {
	v.checkIndex(i)
	p := v.v[i]
	if p == nil {
		return nil
	}
	return rawBytes(unsafe.Pointer(p))
}

// Ptr returns the char ** for the backing array, suitable for passing
// as argv or envp. It is valid until the vector is mutated or freed.
func (v *CStringVec) Ptr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(v.slice()))
}

// IntoSlice consumes the vector and returns its raw pointer array.
// The elements will no longer be freed automatically; the caller
// assumes ownership of every non-NULL pointer.
func (v *CStringVec) IntoSlice() []unsafe.Pointer {
	s := v.slice()
	v.v = nil
	return unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

// Clone returns a vector whose elements compare equal to the
// original's but are backed by entirely distinct allocations. NULL
// slots stay NULL.
func (v *CStringVec) Clone() *CStringVec {
	s := v.slice()
	nv := make([]*C.char, len(s), cap(s))
	for i, p := range s {
		if p == nil {
			continue
		}
		n := C.strlen(p)
		q := C.malloc(n + 1)
		C.memcpy(q, unsafe.Pointer(p), n+1)
		nv[i] = (*C.char)(q)
	}
	return &CStringVec{v: nv}
}

// Free releases every owned element and detaches the backing array.
// Freeing a CStringVec twice is a contract violation and panics.
func (v *CStringVec) Free() {
	for _, p := range v.slice() {
		if p != nil {
			C.free(unsafe.Pointer(p))
		}
	}
	v.v = nil
}
