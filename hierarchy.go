package kala

// Widget hierarchy. Links are IDs resolved through Engine.Widgets, so a widget
// never holds a pointer to its parent or children.

// Parent returns the parent widget, or nil for a root.
func (w *Widget) Parent() *Widget {
	if w.parentID == 0 {
		return nil
	}
	p, _ := w.engine.Widgets.Get(w.parentID)
	return p
}

// Children returns the live children in insertion order.
func (w *Widget) Children() []*Widget {
	out := make([]*Widget, 0, len(w.children))
	for _, cid := range w.children {
		if c, ok := w.engine.Widgets.Get(cid); ok {
			out = append(out, c)
		}
	}
	return out
}

// AddChild attaches child under w, detaching it from any previous parent.
// The child's combined pose and its subtree are recomputed against w.
func (w *Widget) AddChild(child *Widget) error {
	if child == nil || w.disposed || child.disposed {
		return ErrDisposed
	}
	if child.windowID != w.windowID {
		return ErrWindowMismatch
	}
	if child == w || child.IsAncestorOf(w) {
		return ErrCycle
	}
	if child.parentID == w.id {
		return nil
	}

	if old := child.Parent(); old != nil {
		old.removeChildID(child.id)
	}
	child.parentID = w.id
	w.children = append(w.children, child.id)

	if w.engine.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}

	w.engine.updateSubtree(child, w.transform, make(map[uint32]struct{}))
	child.AABB()
	return nil
}

// RemoveChild detaches child from w. The child becomes a root and keeps its
// world pose.
func (w *Widget) RemoveChild(child *Widget) error {
	if child == nil || child.parentID != w.id {
		return ErrNotChild
	}
	w.removeChildID(child.id)
	child.parentID = 0
	w.engine.updateSubtree(child, nil, make(map[uint32]struct{}))
	child.AABB()
	return nil
}

// RemoveFromParent detaches w from its parent, if any.
func (w *Widget) RemoveFromParent() {
	if p := w.Parent(); p != nil {
		_ = p.RemoveChild(w)
		return
	}
	w.parentID = 0
}

// IsAncestorOf reports whether w appears on other's parent chain.
func (w *Widget) IsAncestorOf(other *Widget) bool {
	if other == nil {
		return false
	}
	visited := make(map[uint32]struct{})
	for pid := other.parentID; pid != 0; {
		if pid == w.id {
			return true
		}
		if _, seen := visited[pid]; seen {
			return false
		}
		visited[pid] = struct{}{}
		p, ok := w.engine.Widgets.Get(pid)
		if !ok {
			return false
		}
		pid = p.parentID
	}
	return false
}

// ResetAfterHierarchyUpdate restores the local pose to identity (position 0,
// rotation 0, size 1) and recomposes against the current parent.
func (w *Widget) ResetAfterHierarchyUpdate() {
	w.transform.ResetLocal(w.parentTransform())
	w.AABB()
}

func (w *Widget) parentTransform() *Transform2D {
	if p := w.Parent(); p != nil {
		return p.transform
	}
	return nil
}

func (w *Widget) removeChildID(id uint32) {
	for i, cid := range w.children {
		if cid == id {
			w.children = append(w.children[:i], w.children[i+1:]...)
			return
		}
	}
}
