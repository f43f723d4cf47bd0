package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/adumbration/adumbration/ecs"
)

// InputSystem samples the keyboard and first gamepad into World.Input.
// Button rising edges are derived from the stored previous state.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	interact := ebiten.IsKeyPressed(ebiten.KeyE) || ebiten.IsKeyPressed(ebiten.KeyEnter)
	grab := ebiten.IsKeyPressed(ebiten.KeyG) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	rotate := ebiten.IsKeyPressed(ebiten.KeyT)
	restart := ebiten.IsKeyPressed(ebiten.KeyR)

	moveX, moveY := 0.0, 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}
	if up {
		moveY -= 1
	}
	if down {
		moveY += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveY = lx, ly
		}
		interact = interact || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		grab = grab || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		rotate = rotate || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		restart = restart || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	// Normalize diagonals.
	if l := math.Hypot(moveX, moveY); l > 1 {
		moveX /= l
		moveY /= l
	}

	in := &w.Input
	in.MoveX = moveX
	in.MoveY = moveY
	in.Interact.Set(interact)
	in.Grab.Set(grab)
	in.Rotate.Set(rotate)
	in.Restart.Set(restart)
}
