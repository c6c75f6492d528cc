package component

// Renderable is how an entity is drawn: one CP437 glyph with colours.
type Renderable struct {
	Glyph byte // CP437 code point
	FG    RGB
	BG    RGB
}

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Named colours used by the spawn table.
var (
	Black  = RGB{0, 0, 0}
	White  = RGB{255, 255, 255}
	Red    = RGB{255, 0, 0}
	Green  = RGB{0, 255, 0}
	Blue   = RGB{0, 0, 255}
	Yellow = RGB{255, 255, 0}
	Cyan   = RGB{0, 255, 255}
	Grey   = RGB{128, 128, 128}
)

var namedColors = map[string]RGB{
	"black":  Black,
	"white":  White,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"yellow": Yellow,
	"cyan":   Cyan,
	"grey":   Grey,
	"gray":   Grey,
}

// NamedColor looks up a colour by lower-case name.
func NamedColor(name string) (RGB, bool) {
	c, ok := namedColors[name]
	return c, ok
}
