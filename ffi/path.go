package ffi

import (
	"bytes"
	"errors"
	"unsafe"
)

// ErrNotTerminated is returned when a byte string expected to carry a
// trailing NUL does not end in one.
var ErrNotTerminated = errors.New("byte string is not nul terminated")

// CStr is a borrowed NUL-terminated byte string: the final byte is NUL
// and no other byte is. It is the view handed to syscall wrappers by
// Path.WithCStr.
type CStr []byte

// CStrFromBytes validates that b is a well-formed NUL-terminated byte
// string and returns it as a CStr. It fails with ErrNotTerminated if b
// is empty or does not end in NUL, and with a *NulError if b contains
// an interior NUL.
func CStrFromBytes(b []byte) (CStr, error) {
	if len(b) == 0 || b[len(b)-1] != 0 {
		return nil, ErrNotTerminated
	}
	if i := bytes.IndexByte(b[:len(b)-1], 0); i >= 0 {
		return nil, &NulError{Index: i, Bytes: b}
	}
	return CStr(b), nil
}

// Bytes returns the string without its terminating NUL.
func (s CStr) Bytes() []byte { return s[:len(s)-1] }

// Ptr returns a pointer to the first byte, for passing to the OS.
func (s CStr) Ptr() *byte { return &s[0] }

func (s CStr) String() string { return string(s.Bytes()) }

// Path is a string that can be cheaply viewed as raw bytes and, on
// demand, as a NUL-terminated C string. Syscall wrappers accept their
// stringy arguments through this interface so that values which are
// already NUL-terminated convert without allocating.
type Path interface {
	// Bytes returns the raw bytes of the string, without any
	// terminator. It is infallible and does not allocate.
	Bytes() []byte

	// WithCStr calls f at most once with a NUL-terminated view of the
	// string. If the string contains an interior NUL byte, f is not
	// called and an error satisfying errors.Is(err, unix.EINVAL) is
	// returned.
	WithCStr(f func(CStr) error) error
}

// PathString adapts a plain Go string to Path. Conversion to a C
// string allocates a temporary buffer valid only for the duration of
// the closure.
type PathString string

func (p PathString) Bytes() []byte {
	if len(p) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(string(p)), len(p))
}

func (p PathString) WithCStr(f func(CStr) error) error {
	for i := 0; i < len(p); i++ {
		if p[i] == 0 {
			return &NulError{Index: i, Bytes: []byte(p)}
		}
	}
	buf := make([]byte, len(p)+1)
	copy(buf, p)
	return f(CStr(buf))
}

// WithCStr passes the already terminated contents through without
// copying.
func (s *CString) WithCStr(f func(CStr) error) error {
	return f(CStr(s.BytesWithNul()))
}
