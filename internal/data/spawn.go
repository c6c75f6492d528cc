package data

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kazoogame/kazoo/internal/component"
	"github.com/kazoogame/kazoo/internal/cp437"
	"gopkg.in/yaml.v3"
)

// SpawnGroup is one row of spawns.yaml: Count entities starting at (X, Y),
// each one StepX/StepY further along than the previous. Count is required
// and must be positive.
type SpawnGroup struct {
	Name  string   `yaml:"name"`
	Count int      `yaml:"count"`
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	StepX int      `yaml:"step_x"`
	StepY int      `yaml:"step_y"`
	Glyph string   `yaml:"glyph"`
	FG    string   `yaml:"fg"`
	BG    string   `yaml:"bg"`
	Tags  []string `yaml:"tags"` // "player", "left_mover"
}

// Spawn is one resolved entity ready to be built.
type Spawn struct {
	Group      string
	Position   component.Position
	Renderable component.Renderable
	Player     bool
	LeftMover  bool
}

// SpawnTable holds the initial entities of a game.
type SpawnTable struct {
	spawns []Spawn
}

// LoadSpawnTable loads spawns.yaml.
func LoadSpawnTable(path string) (*SpawnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	return ParseSpawnTable(raw)
}

// ParseSpawnTable builds a table from YAML bytes.
func ParseSpawnTable(raw []byte) (*SpawnTable, error) {
	var groups []SpawnGroup
	if err := yaml.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	return NewSpawnTable(groups)
}

// NewSpawnTable validates groups and expands them into spawns.
func NewSpawnTable(groups []SpawnGroup) (*SpawnTable, error) {
	t := &SpawnTable{}
	for i, g := range groups {
		spawns, err := g.expand()
		if err != nil {
			name := g.Name
			if name == "" {
				name = "#" + strconv.Itoa(i)
			}
			return nil, fmt.Errorf("spawn group %s: %w", name, err)
		}
		t.spawns = append(t.spawns, spawns...)
	}
	return t, nil
}

// DefaultSpawnGroups is the stock layout: the player in the middle of the
// field and ten walkers spread along row 20.
func DefaultSpawnGroups() []SpawnGroup {
	return []SpawnGroup{
		{Name: "player", Count: 1, X: 40, Y: 25, Glyph: "@", FG: "yellow", BG: "black", Tags: []string{"player"}},
		{Name: "walkers", Count: 10, X: 0, Y: 20, StepX: 7, Glyph: "☺", FG: "red", BG: "black", Tags: []string{"left_mover"}},
	}
}

// Spawns returns all resolved spawns in file order.
func (t *SpawnTable) Spawns() []Spawn { return t.spawns }

// Count returns the total number of spawns.
func (t *SpawnTable) Count() int { return len(t.spawns) }

func (g SpawnGroup) expand() ([]Spawn, error) {
	if g.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", g.Count)
	}
	count := g.Count
	glyph, err := EncodeGlyph(g.Glyph)
	if err != nil {
		return nil, err
	}
	fg, err := ParseColor(g.FG, component.White)
	if err != nil {
		return nil, fmt.Errorf("fg: %w", err)
	}
	bg, err := ParseColor(g.BG, component.Black)
	if err != nil {
		return nil, fmt.Errorf("bg: %w", err)
	}
	base := Spawn{
		Group:      g.Name,
		Renderable: component.Renderable{Glyph: glyph, FG: fg, BG: bg},
	}
	for _, tag := range g.Tags {
		switch tag {
		case "player":
			base.Player = true
		case "left_mover":
			base.LeftMover = true
		default:
			return nil, fmt.Errorf("unknown tag %q", tag)
		}
	}

	out := make([]Spawn, 0, count)
	for i := 0; i < count; i++ {
		s := base
		s.Position = component.Position{X: g.X + i*g.StepX, Y: g.Y + i*g.StepY}
		if s.Position.X < 0 || s.Position.X > component.MaxX || s.Position.Y < 0 || s.Position.Y > component.MaxY {
			return nil, fmt.Errorf("spawn %d at (%d,%d) is off the field", i, s.Position.X, s.Position.Y)
		}
		out = append(out, s)
	}
	return out, nil
}

var errGlyph = errors.New("glyph must be a single character")

// EncodeGlyph converts a one-character string to its CP437 code point.
func EncodeGlyph(s string) (byte, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q", errGlyph, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	b, ok := cp437.Encode(r)
	if !ok {
		return 0, fmt.Errorf("glyph %q has no CP437 code point", s)
	}
	return b, nil
}

// ParseColor accepts a colour name or #rrggbb. Empty means def.
func ParseColor(s string, def component.RGB) (component.RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	if c, ok := component.NamedColor(s); ok {
		return c, nil
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return component.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
		}
	}
	return def, fmt.Errorf("unknown colour %q", s)
}
