//go:build linux

package main

import (
	"bufio"
	"context"
	"os"
)

type key int

const (
	keyQuit key = iota
	keySortNext
	keyViewNext
	keyUp
	keyDown
	keyPageUp
	keyPageDown
)

// readKeys decodes the small key set the UI understands from raw-mode
// stdin, including the CSI escape sequences for arrows and paging. The
// goroutine blocks on stdin and dies with the process; after ctx is done
// any trailing key is dropped instead of blocking on the channel.
func readKeys(ctx context.Context) <-chan key {
	ch := make(chan key, 8)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			b, err := reader.ReadByte()
			if err != nil {
				return
			}

			var decoded key
			switch b {
			case 'q', 'Q', 3: // 3 is Ctrl+C in raw mode
				decoded = keyQuit
			case 'n', 'N':
				decoded = keySortNext
			case 'v', 'V':
				decoded = keyViewNext
			case 0x1b:
				k, ok := decodeEscape(reader)
				if !ok {
					continue
				}
				decoded = k
			default:
				continue
			}

			select {
			case ch <- decoded:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// decodeEscape consumes the remainder of a CSI sequence: ESC [ A/B for the
// arrows, ESC [ 5~ / 6~ for paging. Anything else is swallowed so stray
// escape bytes never reach the view as garbage.
func decodeEscape(reader *bufio.Reader) (key, bool) {
	b, err := reader.ReadByte()
	if err != nil || b != '[' {
		return 0, false
	}
	b, err = reader.ReadByte()
	if err != nil {
		return 0, false
	}
	switch b {
	case 'A':
		return keyUp, true
	case 'B':
		return keyDown, true
	case '5', '6':
		tilde, err := reader.ReadByte()
		if err != nil || tilde != '~' {
			return 0, false
		}
		if b == '5' {
			return keyPageUp, true
		}
		return keyPageDown, true
	default:
		return 0, false
	}
}
