package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kazoogame/kazoo/internal/component"
	"github.com/kazoogame/kazoo/internal/cp437"
)

// Terminal presents Frames on an ANSI terminal with 24-bit colour. Glyphs are
// decoded from CP437.
type Terminal struct {
	out  *bufio.Writer
	prev *Frame
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{out: bufio.NewWriterSize(w, 32*1024)}
}

// Begin switches to the alternate screen and hides the cursor.
func (t *Terminal) Begin(title string) error {
	fmt.Fprintf(t.out, "\x1b]0;%s\x07\x1b[?1049h\x1b[?25l\x1b[2J", title)
	return t.out.Flush()
}

// End restores the normal screen and cursor.
func (t *Terminal) End() error {
	t.out.WriteString("\x1b[0m\x1b[?25h\x1b[?1049l")
	return t.out.Flush()
}

// Present writes the cells of f that changed since the previous frame.
func (t *Terminal) Present(f *Frame) error {
	full := t.prev == nil || t.prev.width != f.width || t.prev.height != f.height
	var fg, bg component.RGB
	styled := false
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.At(x, y)
			if !full && t.prev.At(x, y) == c {
				continue
			}
			fmt.Fprintf(t.out, "\x1b[%d;%dH", y+1, x+1)
			if !styled || c.FG != fg || c.BG != bg {
				fmt.Fprintf(t.out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm",
					c.FG.R, c.FG.G, c.FG.B, c.BG.R, c.BG.G, c.BG.B)
				fg, bg, styled = c.FG, c.BG, true
			}
			t.out.WriteRune(cp437.Decode(c.Glyph))
		}
	}
	if t.prev == nil || full {
		t.prev = NewFrame(f.width, f.height)
	}
	copy(t.prev.cells, f.cells)
	return t.out.Flush()
}
