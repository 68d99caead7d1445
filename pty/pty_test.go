//go:build linux || darwin

package pty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/cptpcrd/slibc-sub000/fd"
	"github.com/cptpcrd/slibc-sub000/pty"
)

func TestOpenpty(t *testing.T) {
	ws := &unix.Winsize{Row: 24, Col: 80}
	master, slave, err := pty.Openpty(ws)
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	assert.True(t, slave.IsTerminal())

	got, err := unix.IoctlGetWinsize(slave.Fd(), unix.TIOCGWINSZ)
	require.NoError(t, err)
	assert.Equal(t, uint16(24), got.Row)
	assert.Equal(t, uint16(80), got.Col)
}

func TestPtsname(t *testing.T) {
	master, slave, err := pty.Openpty(nil)
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	name, err := pty.Ptsname(master)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "/dev/"), "unexpected slave name %q", name)

	tname, err := pty.TTYName(slave)
	require.NoError(t, err)
	assert.Equal(t, name, tname)
}

func TestTTYNameNotTerminal(t *testing.T) {
	r, w, err := fd.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = pty.TTYName(r)
	assert.ErrorIs(t, err, unix.ENOTTY)
}
