package render

import (
	"github.com/kazoogame/kazoo/internal/component"
	"github.com/kazoogame/kazoo/internal/core/ecs"
)

// Draw clears s and paints every entity that has both a Position and a
// Renderable. Entities are painted in ascending id order, so when two share a
// cell the later one wins. Returns the number of entities drawn.
func Draw(w *ecs.World, s Surface) int {
	positions := ecs.ReadStorage[component.Position](w)
	defer positions.Release()
	renderables := ecs.ReadStorage[component.Renderable](w)
	defer renderables.Release()

	s.Clear()
	n := 0
	for row := range ecs.Join2(positions, renderables) {
		s.Set(row.A.X, row.A.Y, row.B.FG, row.B.BG, row.B.Glyph)
		n++
	}
	return n
}
