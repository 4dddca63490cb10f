package kala

import "math"

// Transform2D holds the world, local and combined pose of a 2D object.
// Rotation is in degrees, wrapped into [0, 360).
//
// Every setter recomputes the combined pose against the parent snapshot it is
// given. The parent is read once at call time, so a child must be updated after
// its parent within a frame or it composes against a stale pose.
type Transform2D struct {
	id uint32

	posWorld    Vec2
	posLocal    Vec2
	posCombined Vec2

	rotWorld    float64
	rotLocal    float64
	rotCombined float64

	sizeWorld    Vec2
	sizeLocal    Vec2
	sizeCombined Vec2
}

func newTransform2D(id uint32) *Transform2D {
	t := &Transform2D{
		id:        id,
		sizeWorld: Vec2{1, 1},
		sizeLocal: Vec2{1, 1},
	}
	t.Recompute(nil)
	return t
}

// NewTransform2D allocates a transform and stores it in the engine's registry.
func (e *Engine) NewTransform2D() *Transform2D {
	t := newTransform2D(e.NextID())
	e.Transforms2D.Add(t.id, t)
	return t
}

// ID returns the transform's registry ID.
func (t *Transform2D) ID() uint32 { return t.id }

// AddPos moves the target position by delta. No-op for TargetCombined.
func (t *Transform2D) AddPos(delta Vec2, target PoseTarget, parent *Transform2D) {
	switch target {
	case TargetWorld:
		t.posWorld = clampVec2(t.posWorld.Add(delta), MinPos, MaxPos)
	case TargetLocal:
		t.posLocal = clampVec2(t.posLocal.Add(delta), MinPos, MaxPos)
	default:
		return
	}
	t.Recompute(parent)
}

// SetPos snaps the target position. No-op for TargetCombined.
func (t *Transform2D) SetPos(pos Vec2, target PoseTarget, parent *Transform2D) {
	switch target {
	case TargetWorld:
		t.posWorld = clampVec2(pos, MinPos, MaxPos)
	case TargetLocal:
		t.posLocal = clampVec2(pos, MinPos, MaxPos)
	default:
		return
	}
	t.Recompute(parent)
}

// Pos returns the cached position for target.
func (t *Transform2D) Pos(target PoseTarget) Vec2 {
	switch target {
	case TargetWorld:
		return t.posWorld
	case TargetLocal:
		return t.posLocal
	case TargetCombined:
		return t.posCombined
	}
	return Vec2{}
}

// AddRot rotates the target by delta degrees. No-op for TargetCombined.
func (t *Transform2D) AddRot(delta float64, target PoseTarget, parent *Transform2D) {
	switch target {
	case TargetWorld:
		t.rotWorld = wrapDegrees(t.rotWorld + delta)
	case TargetLocal:
		t.rotLocal = wrapDegrees(t.rotLocal + delta)
	default:
		return
	}
	t.Recompute(parent)
}

// SetRot snaps the target rotation, in degrees. No-op for TargetCombined.
func (t *Transform2D) SetRot(deg float64, target PoseTarget, parent *Transform2D) {
	switch target {
	case TargetWorld:
		t.rotWorld = wrapDegrees(deg)
	case TargetLocal:
		t.rotLocal = wrapDegrees(deg)
	default:
		return
	}
	t.Recompute(parent)
}

// Rot returns the cached rotation for target, in degrees.
func (t *Transform2D) Rot(target PoseTarget) float64 {
	switch target {
	case TargetWorld:
		return t.rotWorld
	case TargetLocal:
		return t.rotLocal
	case TargetCombined:
		return t.rotCombined
	}
	return 0
}

// AddSize grows the target size by delta. No-op for TargetCombined.
func (t *Transform2D) AddSize(delta Vec2, target PoseTarget, parent *Transform2D) {
	switch target {
	case TargetWorld:
		t.sizeWorld = clampVec2(t.sizeWorld.Add(delta), MinSize, MaxSize)
	case TargetLocal:
		t.sizeLocal = clampVec2(t.sizeLocal.Add(delta), MinSize, MaxSize)
	default:
		return
	}
	t.Recompute(parent)
}

// SetSize snaps the target size. No-op for TargetCombined.
func (t *Transform2D) SetSize(size Vec2, target PoseTarget, parent *Transform2D) {
	switch target {
	case TargetWorld:
		t.sizeWorld = clampVec2(size, MinSize, MaxSize)
	case TargetLocal:
		t.sizeLocal = clampVec2(size, MinSize, MaxSize)
	default:
		return
	}
	t.Recompute(parent)
}

// Size returns the cached size for target.
func (t *Transform2D) Size(target PoseTarget) Vec2 {
	switch target {
	case TargetWorld:
		return t.sizeWorld
	case TargetLocal:
		return t.sizeLocal
	case TargetCombined:
		return t.sizeCombined
	}
	return Vec2{}
}

// Recompute derives the combined pose from world, local and the parent's
// combined pose. A nil parent makes this a root: combined equals world.
//
// With a parent the local position is rotated by the parent's combined
// rotation before the offsets are summed:
//
//	pos  = parent.pos + world.pos + R(parent.rot) * local.pos
//	rot  = parent.rot + world.rot + local.rot
//	size = parent.size * world.size * local.size
func (t *Transform2D) Recompute(parent *Transform2D) {
	if parent == nil {
		t.posCombined = t.posWorld
		t.rotCombined = t.rotWorld
		t.sizeCombined = t.sizeWorld
		return
	}

	t.rotCombined = wrapDegrees(parent.rotCombined + t.rotWorld + t.rotLocal)
	t.sizeCombined = parent.sizeCombined.Mul(t.sizeWorld).Mul(t.sizeLocal)

	sin, cos := math.Sincos(radians(parent.rotCombined))
	offset := Vec2{
		X: cos*t.posLocal.X - sin*t.posLocal.Y,
		Y: sin*t.posLocal.X + cos*t.posLocal.Y,
	}
	t.posCombined = parent.posCombined.Add(t.posWorld).Add(offset)
}

// ResetLocal restores the local pose to identity and recomposes.
func (t *Transform2D) ResetLocal(parent *Transform2D) {
	t.posLocal = Vec2{}
	t.rotLocal = 0
	t.sizeLocal = Vec2{1, 1}
	t.Recompute(parent)
}
