package component

// Play field bounds. Positions are valid for 0..MaxX and 0..MaxY.
const (
	FieldWidth  = 80
	FieldHeight = 50
	MaxX        = FieldWidth - 1
	MaxY        = FieldHeight - 1
)

// Position is a cell on the play field.
type Position struct {
	X int
	Y int
}
