package system

import (
	"github.com/jakecoffman/cp"

	"github.com/adumbration/adumbration/common"
	"github.com/adumbration/adumbration/ecs"
	"github.com/adumbration/adumbration/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
)

// physicsSubsteps splits each tick so the player never ends a tick inside a
// wall by more than the collision slop.
const physicsSubsteps = 8

// PlayerSystem moves the player through a top-down chipmunk space. Walls and
// closed doors are static boxes; the space is rebuilt whenever a new world is
// loaded.
type PlayerSystem struct {
	space *cp.Space
	world *ecs.World
	body  *cp.Body
	shape *cp.Shape
	doors map[*component.Door]*cp.Shape
}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{doors: make(map[*component.Door]*cp.Shape)}
}

func (ps *PlayerSystem) Space() *cp.Space {
	return ps.space
}

func (ps *PlayerSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	if ps.world != w {
		ps.rebuild(w)
	}
	ps.syncDoors(w)

	speed := w.Tuning.Player.Speed
	before := ps.body.Position()
	ps.body.SetVelocityVector(cp.Vector{X: w.Input.MoveX * speed, Y: w.Input.MoveY * speed})
	ps.body.SetAngle(0)
	ps.body.SetAngularVelocity(0)
	for i := 0; i < physicsSubsteps; i++ {
		ps.space.Step(1.0 / physicsSubsteps)
	}
	after := ps.body.Position()
	ps.body.SetVelocityVector(cp.Vector{})

	p := w.Player
	p.DX, p.DY = after.X-before.X, after.Y-before.Y
	p.Rect.X = after.X - p.Rect.W/2
	p.Rect.Y = after.Y - p.Rect.H/2
}

func (ps *PlayerSystem) rebuild(w *ecs.World) {
	ps.world = w
	ps.space = cp.NewSpace()
	ps.space.Iterations = 20
	ps.space.SetGravity(cp.Vector{})
	ps.doors = make(map[*component.Door]*cp.Shape)

	w.ForEach(func(_, _ int, e component.Entity) {
		if _, ok := e.(*component.Door); ok {
			return
		}
		if component.IsWall(e) {
			ps.space.AddShape(ps.staticBox(e.Base().Rect))
		}
	})
	ps.addBounds(w.Bounds())

	p := w.Player
	mass := w.Tuning.Player.Mass
	if mass <= 0 {
		mass = 1
	}
	cx, cy := p.Rect.Center()
	ps.body = cp.NewBody(mass, cp.MomentForBox(mass, p.Rect.W, p.Rect.H))
	ps.body.SetPosition(cp.Vector{X: cx, Y: cy})
	ps.body.SetAngle(0)
	ps.body.SetAngularVelocity(0)

	ps.shape = cp.NewBox(ps.body, p.Rect.W, p.Rect.H, 0)
	ps.shape.SetFriction(0)
	ps.shape.SetElasticity(0)
	ps.shape.SetCollisionType(collisionTypePlayer)

	ps.space.AddBody(ps.body)
	ps.space.AddShape(ps.shape)
}

// syncDoors keeps a static box in the space for every closed channel door.
func (ps *PlayerSystem) syncDoors(w *ecs.World) {
	w.ForEach(func(_, _ int, e component.Entity) {
		d, ok := e.(*component.Door)
		if !ok {
			return
		}
		shape, present := ps.doors[d]
		switch {
		case d.Open && present:
			ps.space.RemoveShape(shape)
			delete(ps.doors, d)
		case !d.Open && !present:
			shape = ps.staticBox(d.Rect)
			ps.space.AddShape(shape)
			ps.doors[d] = shape
		}
	})
}

func (ps *PlayerSystem) staticBox(r common.Rect) *cp.Shape {
	bb := cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
	shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeSolid)
	return shape
}

func (ps *PlayerSystem) addBounds(bounds common.Rect) {
	if bounds.Empty() {
		return
	}
	worldW, worldH := bounds.W, bounds.H
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
	}
}
