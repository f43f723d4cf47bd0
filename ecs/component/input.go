package component

// Button keeps the current and previous tick's state for rising-edge checks.
type Button struct {
	Down    bool
	WasDown bool
}

// Set shifts the current state into the previous one.
func (b *Button) Set(down bool) {
	b.WasDown = b.Down
	b.Down = down
}

func (b Button) Pressed() bool {
	return b.Down && !b.WasDown
}

// Input stores the per-tick input snapshot.
type Input struct {
	MoveX    float64
	MoveY    float64
	Interact Button
	Grab     Button
	Rotate   Button
	Restart  Button
}
