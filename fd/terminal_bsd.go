//go:build darwin || freebsd || netbsd || openbsd

package fd

import "golang.org/x/sys/unix"

const ioctlTermiosGet = unix.TIOCGETA
