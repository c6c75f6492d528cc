// Package cp437 converts between runes and code page 437 glyph bytes the way
// text-mode consoles draw them: bytes below 0x20 and 0x7F are pictures
// (☺, ♥, →, ⌂ ...) rather than control characters.
package cp437

import "golang.org/x/text/encoding/charmap"

// low holds the glyphs of 0x00..0x1F.
var low = [32]rune{
	' ', '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

const house = '⌂' // 0x7F

var reverse = func() map[rune]byte {
	m := make(map[rune]byte, len(low)+1)
	for i, r := range low[1:] {
		m[r] = byte(i + 1)
	}
	m[house] = 0x7F
	return m
}()

// Encode returns the CP437 byte that draws r.
func Encode(r rune) (byte, bool) {
	if r >= 0x20 && r < 0x7F {
		return byte(r), true
	}
	if b, ok := reverse[r]; ok {
		return b, true
	}
	if r < 0x80 {
		return 0, false // control characters have no glyph
	}
	return charmap.CodePage437.EncodeRune(r)
}

// Decode returns the rune drawn for CP437 byte b.
func Decode(b byte) rune {
	switch {
	case b < 0x20:
		return low[b]
	case b == 0x7F:
		return house
	}
	return charmap.CodePage437.DecodeByte(b)
}
