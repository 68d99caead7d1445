package fd

import "golang.org/x/sys/unix"

const ioctlTermiosGet = unix.TCGETS
