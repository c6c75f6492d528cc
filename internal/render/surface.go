package render

import "github.com/kazoogame/kazoo/internal/component"

// Surface is where a frame is drawn. It knows nothing about the world.
type Surface interface {
	Clear()
	Set(x, y int, fg, bg component.RGB, glyph byte)
}

// Cell is one character cell of a Frame.
type Cell struct {
	Glyph byte
	FG    component.RGB
	BG    component.RGB
}

// Frame is an in-memory grid Surface. Writes outside the grid are dropped.
type Frame struct {
	width  int
	height int
	cells  []Cell
}

func NewFrame(width, height int) *Frame {
	f := &Frame{width: width, height: height, cells: make([]Cell, width*height)}
	f.Clear()
	return f
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = Cell{Glyph: ' ', FG: component.White, BG: component.Black}
	}
}

func (f *Frame) Set(x, y int, fg, bg component.RGB, glyph byte) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.cells[y*f.width+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
}

// At returns the cell at (x, y); out-of-range reads return a blank cell.
func (f *Frame) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return Cell{Glyph: ' '}
	}
	return f.cells[y*f.width+x]
}
