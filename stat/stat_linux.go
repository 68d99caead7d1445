package stat

import "golang.org/x/sys/unix"

const (
	// EmptyPath makes Fstatat operate on dirfd itself when path is
	// empty.
	EmptyPath AtFlag = unix.AT_EMPTY_PATH

	// NoAutomount suppresses automounting of the terminal component.
	NoAutomount AtFlag = unix.AT_NO_AUTOMOUNT
)
