//go:build linux

package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// enableSingleView switches to the alternate screen buffer with a hidden
// cursor and puts stdin into raw mode so single keystrokes arrive
// unbuffered and unechoed. The returned func restores everything.
func enableSingleView() func() {
	stdoutFD := int(os.Stdout.Fd())
	stdinFD := int(os.Stdin.Fd())
	if !term.IsTerminal(stdoutFD) {
		return func() {}
	}

	fmt.Print("\033[?1049h") // switch to alternate buffer
	fmt.Print("\033[?25l")   // hide cursor

	var restore []func()
	if term.IsTerminal(stdinFD) {
		if undoRaw, err := enableRawInput(stdinFD); err != nil {
			log.Printf("unable to switch stdin to raw mode: %v", err)
		} else if undoRaw != nil {
			restore = append(restore, undoRaw)
		}
	}

	return func() {
		for i := len(restore) - 1; i >= 0; i-- {
			restore[i]()
		}
		fmt.Print("\033[?25h")   // show cursor
		fmt.Print("\033[?1049l") // restore main buffer
	}
}

// enableRawInput turns off canonical mode and echo so the key reader sees
// each byte as it is typed. VMIN=1 keeps reads blocking per byte.
func enableRawInput(fd int) (func(), error) {
	termState, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}

	updated := *termState
	updated.Lflag &^= unix.ECHO | unix.ICANON
	updated.Cc[unix.VMIN] = 1
	updated.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &updated); err != nil {
		return nil, err
	}

	return func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, termState)
	}, nil
}
