// Package ffi implements the string marshaling layer shared by every
// libc binding in this module: owned NUL-terminated buffers, the
// NULL-terminated pointer arrays consumed by execve-style interfaces,
// and scoped conversion of Go strings to C strings.
package ffi

import (
	"bytes"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

//#include <stdlib.h>
//#include <string.h>
import "C"

// NulError reports an interior NUL byte in a string that was being
// converted to a C string. The original bytes are retained for
// recovery by the caller.
type NulError struct {
	Index int
	Bytes []byte
}

func (e *NulError) Error() string {
	return fmt.Sprintf("nul byte found at position %d", e.Index)
}

// Unwrap maps the validation failure to the equivalent OS error.
func (e *NulError) Unwrap() error { return unix.EINVAL }

// CString owns a malloc-allocated byte buffer that ends in exactly one
// NUL byte and contains no other NUL. The allocation is freed exactly
// once, by Free or by the CStringVec that adopts it.
type CString struct {
	p *C.char
	n int // length excluding the terminating NUL
}

// NewCString copies b into a new C allocation with a trailing NUL.
// If b contains an interior NUL byte the returned error is a *NulError
// reporting its offset, and no allocation takes place.
func NewCString(b []byte) (*CString, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return nil, &NulError{Index: i, Bytes: b}
	}
	p := C.malloc(C.size_t(len(b) + 1))
	buf := unsafe.Slice((*byte)(p), len(b)+1)
	copy(buf, b)
	buf[len(b)] = 0
	return &CString{p: (*C.char)(p), n: len(b)}, nil
}

// MustCString is NewCString for string literals and other values known
// not to contain NUL. It panics if the conversion fails.
func MustCString(s string) *CString {
	cs, err := NewCString([]byte(s))
	if err != nil {
		panic(err.Error())
	}
	return cs
}

// CStringFromRaw takes ownership of a pointer previously returned by
// IntoRaw, or of any NUL-terminated malloc allocation not owned
// elsewhere. The pointer must not be aliased after this call.
func CStringFromRaw(p unsafe.Pointer) *CString {
	return &CString{p: (*C.char)(p), n: int(C.strlen((*C.char)(p)))}
}

func (s *CString) ptr() *C.char {
	if s.p == nil {
		panic("ffi: use of freed CString")
	}
	return s.p
}

// Bytes returns a view of the string without its terminating NUL.
// The view is valid until the CString is freed.
func (s *CString) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(s.ptr())), s.n)
}

// BytesWithNul returns a view of the string including its terminating
// NUL. The view is valid until the CString is freed.
func (s *CString) BytesWithNul() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(s.ptr())), s.n+1)
}

// Len returns the length of the string, excluding the terminating NUL.
func (s *CString) Len() int { return s.n }

func (s *CString) Empty() bool { return s.n == 0 }

// String returns a copy of the string contents.
func (s *CString) String() string { return string(s.Bytes()) }

// IntoRaw consumes the CString and returns the underlying pointer.
// The caller is responsible for eventually passing the pointer back to
// CStringFromRaw (or freeing it with the C allocator) to avoid a leak.
// The receiver must not be used afterwards.
func (s *CString) IntoRaw() unsafe.Pointer {
	p := unsafe.Pointer(s.ptr())
	s.p = nil
	s.n = 0
	return p
}

// Clone returns a CString with identical contents backed by a distinct
// allocation.
func (s *CString) Clone() *CString {
	cs, err := NewCString(s.Bytes())
	if err != nil {
		// unreachable: the invariant rules out interior NUL
		panic(err.Error())
	}
	return cs
}

// Free releases the underlying allocation. Freeing a CString twice, or
// freeing one already consumed by IntoRaw, is a contract violation and
// panics.
func (s *CString) Free() {
	if s.p == nil {
		panic("ffi: CString already freed")
	}
	C.free(unsafe.Pointer(s.p))
	s.p = nil
	s.n = 0
}

// rawBytes returns a view of the NUL-terminated string at p, without
// the terminator.
func rawBytes(p unsafe.Pointer) []byte {
	n := int(C.strlen((*C.char)(p)))
	return unsafe.Slice((*byte)(p), n)
}
