package kala

// Transform3D holds the world, local and combined pose of a 3D object.
// Rotations are stored as normalized quaternions; the Euler accessors use
// degrees wrapped into [0, 360).
//
// The update protocol matches Transform2D: setters recompute the combined pose
// against the parent snapshot passed in.
type Transform3D struct {
	id uint32

	posWorld    Vec3
	posLocal    Vec3
	posCombined Vec3

	rotWorld    Quat
	rotLocal    Quat
	rotCombined Quat

	sizeWorld    Vec3
	sizeLocal    Vec3
	sizeCombined Vec3
}

func newTransform3D(id uint32) *Transform3D {
	t := &Transform3D{
		id:        id,
		rotWorld:  QuatIdentity,
		rotLocal:  QuatIdentity,
		sizeWorld: Vec3{1, 1, 1},
		sizeLocal: Vec3{1, 1, 1},
	}
	t.Recompute(nil)
	return t
}

// NewTransform3D allocates a transform and stores it in the engine's registry.
func (e *Engine) NewTransform3D() *Transform3D {
	t := newTransform3D(e.NextID())
	e.Transforms3D.Add(t.id, t)
	return t
}

// ID returns the transform's registry ID.
func (t *Transform3D) ID() uint32 { return t.id }

// AddPos moves the target position by delta. No-op for TargetCombined.
func (t *Transform3D) AddPos(delta Vec3, target PoseTarget, parent *Transform3D) {
	switch target {
	case TargetWorld:
		t.posWorld = clampVec3(t.posWorld.Add(delta), MinPos, MaxPos)
	case TargetLocal:
		t.posLocal = clampVec3(t.posLocal.Add(delta), MinPos, MaxPos)
	default:
		return
	}
	t.Recompute(parent)
}

// SetPos snaps the target position. No-op for TargetCombined.
func (t *Transform3D) SetPos(pos Vec3, target PoseTarget, parent *Transform3D) {
	switch target {
	case TargetWorld:
		t.posWorld = clampVec3(pos, MinPos, MaxPos)
	case TargetLocal:
		t.posLocal = clampVec3(pos, MinPos, MaxPos)
	default:
		return
	}
	t.Recompute(parent)
}

// Pos returns the cached position for target.
func (t *Transform3D) Pos(target PoseTarget) Vec3 {
	switch target {
	case TargetWorld:
		return t.posWorld
	case TargetLocal:
		return t.posLocal
	case TargetCombined:
		return t.posCombined
	}
	return Vec3{}
}

// AddRot adds Euler degrees to the target rotation. Each axis is wrapped
// before conversion back to a quaternion. No-op for TargetCombined.
func (t *Transform3D) AddRot(delta Vec3, target PoseTarget, parent *Transform3D) {
	var current Vec3
	switch target {
	case TargetWorld:
		current = QuatEuler(t.rotWorld)
	case TargetLocal:
		current = QuatEuler(t.rotLocal)
	default:
		return
	}
	t.setRot(QuatFromEuler(wrapEuler(current.Add(delta))), target, parent)
}

// SetRotEuler snaps the target rotation to Euler degrees. No-op for TargetCombined.
func (t *Transform3D) SetRotEuler(e Vec3, target PoseTarget, parent *Transform3D) {
	t.setRot(QuatFromEuler(wrapEuler(e)), target, parent)
}

// SetRotQuat snaps the target rotation to q after normalizing it.
// No-op for TargetCombined.
func (t *Transform3D) SetRotQuat(q Quat, target PoseTarget, parent *Transform3D) {
	t.setRot(normalizeQuat(q), target, parent)
}

func (t *Transform3D) setRot(q Quat, target PoseTarget, parent *Transform3D) {
	switch target {
	case TargetWorld:
		t.rotWorld = q
	case TargetLocal:
		t.rotLocal = q
	default:
		return
	}
	t.Recompute(parent)
}

// RotQuat returns the cached rotation for target.
func (t *Transform3D) RotQuat(target PoseTarget) Quat {
	switch target {
	case TargetWorld:
		return t.rotWorld
	case TargetLocal:
		return t.rotLocal
	case TargetCombined:
		return t.rotCombined
	}
	return QuatIdentity
}

// RotEuler returns the rotation for target as Euler degrees.
func (t *Transform3D) RotEuler(target PoseTarget) Vec3 {
	return QuatEuler(t.RotQuat(target))
}

// AddSize grows the target size by delta. No-op for TargetCombined.
func (t *Transform3D) AddSize(delta Vec3, target PoseTarget, parent *Transform3D) {
	switch target {
	case TargetWorld:
		t.sizeWorld = clampVec3(t.sizeWorld.Add(delta), MinSize, MaxSize)
	case TargetLocal:
		t.sizeLocal = clampVec3(t.sizeLocal.Add(delta), MinSize, MaxSize)
	default:
		return
	}
	t.Recompute(parent)
}

// SetSize snaps the target size. No-op for TargetCombined.
func (t *Transform3D) SetSize(size Vec3, target PoseTarget, parent *Transform3D) {
	switch target {
	case TargetWorld:
		t.sizeWorld = clampVec3(size, MinSize, MaxSize)
	case TargetLocal:
		t.sizeLocal = clampVec3(size, MinSize, MaxSize)
	default:
		return
	}
	t.Recompute(parent)
}

// Size returns the cached size for target.
func (t *Transform3D) Size(target PoseTarget) Vec3 {
	switch target {
	case TargetWorld:
		return t.sizeWorld
	case TargetLocal:
		return t.sizeLocal
	case TargetCombined:
		return t.sizeCombined
	}
	return Vec3{}
}

// Recompute derives the combined pose. A nil parent makes this a root.
//
//	pos  = parent.pos + world.pos + R(parent.rot) * local.pos
//	rot  = parent.rot * world.rot * local.rot
//	size = parent.size * world.size * local.size
func (t *Transform3D) Recompute(parent *Transform3D) {
	if parent == nil {
		t.posCombined = t.posWorld
		t.rotCombined = t.rotWorld
		t.sizeCombined = t.sizeWorld
		return
	}
	t.rotCombined = normalizeQuat(parent.rotCombined.Mul(t.rotWorld).Mul(t.rotLocal))
	t.sizeCombined = parent.sizeCombined.Mul(t.sizeWorld).Mul(t.sizeLocal)
	t.posCombined = parent.posCombined.Add(t.posWorld).Add(rotateVec3(parent.rotCombined, t.posLocal))
}

func wrapEuler(e Vec3) Vec3 {
	return Vec3{wrapDegrees(e.X), wrapDegrees(e.Y), wrapDegrees(e.Z)}
}
