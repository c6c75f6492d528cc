package input

// Intent is what a key press asks the player to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentUp
	IntentDown
)

var intentNames = [...]string{
	IntentNone:  "none",
	IntentLeft:  "left",
	IntentRight: "right",
	IntentUp:    "up",
	IntentDown:  "down",
}

func (i Intent) String() string {
	if i < 0 || int(i) >= len(intentNames) {
		return "none"
	}
	return intentNames[i]
}

// Delta is the unit step of the intent. Up is towards row 0.
func (i Intent) Delta() (dx, dy int) {
	switch i {
	case IntentLeft:
		return -1, 0
	case IntentRight:
		return 1, 0
	case IntentUp:
		return 0, -1
	case IntentDown:
		return 0, 1
	}
	return 0, 0
}

// ParseIntent maps an intent name back to its value; unknown names are none.
func ParseIntent(name string) Intent {
	for i, n := range intentNames {
		if n == name {
			return Intent(i)
		}
	}
	return IntentNone
}
