package component

// LevelChangeRequest is emitted by gameplay systems to ask the outer game loop
// to load a different level. Systems only emit data; the game loop owns IO and
// world replacement.
type LevelChangeRequest struct {
	TargetLevel string
	FromLevel   string
}
