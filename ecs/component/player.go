package component

import "github.com/adumbration/adumbration/common"

type Player struct {
	Rect common.Rect
	// DX/DY is how far the player moved during the last physics step.
	DX, DY float64
}
