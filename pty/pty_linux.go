package pty

import "golang.org/x/sys/unix"

//#cgo LDFLAGS: -lutil
//#include <pty.h>
//#include <utmp.h>
import "C"

func openpty(winsize *unix.Winsize) (int, int, error) {
	var master, slave C.int
	var wsp *C.struct_winsize
	if winsize != nil {
		wsp = &C.struct_winsize{
			ws_row:    C.ushort(winsize.Row),
			ws_col:    C.ushort(winsize.Col),
			ws_xpixel: C.ushort(winsize.Xpixel),
			ws_ypixel: C.ushort(winsize.Ypixel),
		}
	}
	rc, err := C.openpty(&master, &slave, nil, nil, wsp)
	if rc != 0 {
		return -1, -1, errnoOr(err, unix.EINVAL)
	}
	return int(master), int(slave), nil
}

func loginTTY(fd int) error {
	rc, err := C.login_tty(C.int(fd))
	if rc != 0 {
		return errnoOr(err, unix.EINVAL)
	}
	return nil
}
