package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kazoogame/kazoo/internal/component"
)

const sample = `
- name: player
  count: 1
  x: 40
  y: 25
  glyph: "@"
  fg: yellow
  bg: black
  tags: [player]
- name: walkers
  count: 3
  x: 0
  y: 20
  step_x: 7
  glyph: "☺"
  fg: "#ff0000"
  tags: [left_mover]
`

func TestParseSpawnTable(t *testing.T) {
	tbl, err := ParseSpawnTable([]byte(sample))
	if err != nil {
		t.Fatalf("ParseSpawnTable: %v", err)
	}
	if tbl.Count() != 4 {
		t.Fatalf("Count = %d, want 4", tbl.Count())
	}
	s := tbl.Spawns()

	p := s[0]
	if !p.Player || p.LeftMover || p.Position != (component.Position{X: 40, Y: 25}) {
		t.Errorf("player spawn = %+v", p)
	}
	if p.Renderable.Glyph != '@' || p.Renderable.FG != component.Yellow || p.Renderable.BG != component.Black {
		t.Errorf("player renderable = %+v", p.Renderable)
	}

	for i, w := range s[1:] {
		if !w.LeftMover || w.Player {
			t.Errorf("walker %d tags wrong: %+v", i, w)
		}
		if w.Position.X != i*7 || w.Position.Y != 20 {
			t.Errorf("walker %d at %+v", i, w.Position)
		}
		if w.Renderable.Glyph != 0x01 {
			t.Errorf("walker glyph = %#x, want CP437 0x01", w.Renderable.Glyph)
		}
		if w.Renderable.FG != component.Red || w.Renderable.BG != component.Black {
			t.Errorf("walker colours = %+v", w.Renderable)
		}
	}
}

func TestDefaultSpawnGroups(t *testing.T) {
	tbl, err := NewSpawnTable(DefaultSpawnGroups())
	if err != nil {
		t.Fatalf("NewSpawnTable: %v", err)
	}
	if tbl.Count() != 11 {
		t.Fatalf("Count = %d, want 11", tbl.Count())
	}
	last := tbl.Spawns()[10]
	if last.Position != (component.Position{X: 63, Y: 20}) {
		t.Errorf("last walker at %+v", last.Position)
	}
}

func TestSpawnTableErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"two char glyph", `[{name: a, count: 1, glyph: "ab"}]`, "single character"},
		{"no cp437", `[{name: a, count: 1, glyph: "€"}]`, "CP437"},
		{"bad colour", `[{name: a, count: 1, glyph: "@", fg: mauve}]`, "unknown colour"},
		{"bad tag", `[{name: a, count: 1, glyph: "@", tags: [flying]}]`, "unknown tag"},
		{"off field", `[{name: a, glyph: "@", count: 2, x: 79, step_x: 1}]`, "off the field"},
		{"negative", `[{name: a, glyph: "@", count: -1}]`, "count must be positive"},
		{"zero count", `[{name: a, glyph: "@", count: 0}]`, "count must be positive"},
		{"misspelled count", `[{name: a, glyph: "@", cout: 5}]`, "count must be positive"},
		{"unnamed", `[{count: 1, glyph: "@", y: 50}]`, "#0"},
		{"not yaml", `{{{`, "parse spawn list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpawnTable([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestEncodeGlyph(t *testing.T) {
	b, err := EncodeGlyph("☺")
	if err != nil || b != 0x01 {
		t.Errorf("EncodeGlyph(☺) = %#x, %v", b, err)
	}
	if _, err := EncodeGlyph(""); !errors.Is(err, errGlyph) {
		t.Errorf("empty glyph err = %v", err)
	}
}

func TestLoadSpawnTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawns.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadSpawnTable(path)
	if err != nil || tbl.Count() != 4 {
		t.Fatalf("LoadSpawnTable = %v, %v", tbl, err)
	}
	if _, err := LoadSpawnTable(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}
