package input

import (
	"bufio"
	"errors"
	"io"
)

// Key names produced by ReadKeys for non-printable keys. Printable keys are
// reported as themselves ("a", "q", "?").
const (
	KeyUp     = "up"
	KeyDown   = "down"
	KeyLeft   = "left"
	KeyRight  = "right"
	KeyEscape = "escape"
	KeyEnter  = "enter"
	KeyCtrlC  = "ctrl+c"
)

const esc = 0x1b

// ReadKeys decodes a raw terminal byte stream into key names and sends them
// to out until r is exhausted. It returns nil on io.EOF.
func ReadKeys(r io.Reader, out chan<- string) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if key := decode(b, br); key != "" {
			out <- key
		}
	}
}

func decode(b byte, br *bufio.Reader) string {
	switch {
	case b == esc:
		return decodeEscape(br)
	case b == 0x03:
		return KeyCtrlC
	case b == '\r' || b == '\n':
		return KeyEnter
	case b >= 0x20 && b < 0x7f:
		return string(rune(b))
	}
	return ""
}

// decodeEscape handles SS3 (ESC O x) and CSI (ESC [ params final) sequences.
// CSI parameter and intermediate bytes are consumed up to the final byte, so
// modified arrows (ESC [ 1 ; 5 D) still decode as arrows and other sequences
// are dropped whole. A lone ESC with nothing buffered behind it is the escape
// key.
func decodeEscape(br *bufio.Reader) string {
	if br.Buffered() == 0 {
		return KeyEscape
	}
	next, _ := br.ReadByte()
	switch next {
	case 'O':
		if br.Buffered() == 0 {
			return KeyEscape
		}
		code, _ := br.ReadByte()
		return arrow(code)
	case '[':
	default:
		return KeyEscape
	}
	for br.Buffered() > 0 {
		b, _ := br.ReadByte()
		switch {
		case b >= 0x40 && b <= 0x7e:
			return arrow(b)
		case b < 0x20 || b > 0x3f:
			return "" // malformed
		}
	}
	return ""
}

func arrow(final byte) string {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return ""
}

// IsQuit reports whether key ends the game loop.
func IsQuit(key string) bool {
	return key == "q" || key == KeyCtrlC
}
