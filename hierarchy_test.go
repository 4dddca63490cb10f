package kala

import (
	"errors"
	"testing"
)

func TestAddChildComposesTransform(t *testing.T) {
	e, _, win := testEngine(t)
	parent := testImage(t, e, win, Vec2{100, 100}, Vec2{2, 2})
	child := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	child.Transform().SetPos(Vec2{10, 0}, TargetLocal, nil)

	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != parent {
		t.Error("Parent mismatch")
	}
	if kids := parent.Children(); len(kids) != 1 || kids[0] != child {
		t.Errorf("Children = %v", kids)
	}
	if got := child.Transform().Pos(TargetCombined); !vecNear(got, Vec2{110, 100}, 1e-9) {
		t.Errorf("combined pos = %v, want {110 100}", got)
	}
	if got := child.Transform().Size(TargetCombined); got != (Vec2{2, 2}) {
		t.Errorf("combined size = %v, want {2 2}", got)
	}

	// Rotating the parent moves the child on the next update.
	parent.Transform().SetRot(90, TargetWorld, nil)
	e.UpdateTransforms(win.ID())
	if got := child.Transform().Pos(TargetCombined); !vecNear(got, Vec2{100, 110}, 1e-6) {
		t.Errorf("after parent rotation pos = %v, want {100 110}", got)
	}
}

func TestAddChildErrors(t *testing.T) {
	e, _, win := testEngine(t)
	a := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	b := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	c := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	if err := a.AddChild(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddChild(c); err != nil {
		t.Fatal(err)
	}

	if err := a.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("self AddChild err = %v, want ErrCycle", err)
	}
	if err := c.AddChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("descendant AddChild err = %v, want ErrCycle", err)
	}

	other, _ := e.NewWindow("other", Vec2{10, 10}, nil)
	foreign := testImage(t, e, other, Vec2{}, Vec2{1, 1})
	if err := a.AddChild(foreign); !errors.Is(err, ErrWindowMismatch) {
		t.Errorf("cross-window AddChild err = %v, want ErrWindowMismatch", err)
	}
	if err := a.AddChild(nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("nil AddChild err = %v, want ErrDisposed", err)
	}
	if err := a.RemoveChild(c); !errors.Is(err, ErrNotChild) {
		t.Errorf("RemoveChild(grandchild) err = %v, want ErrNotChild", err)
	}
}

func TestAddChildReparents(t *testing.T) {
	e, _, win := testEngine(t)
	a := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	b := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	child := testImage(t, e, win, Vec2{}, Vec2{1, 1})

	_ = a.AddChild(child)
	if err := b.AddChild(child); err != nil {
		t.Fatal(err)
	}
	if len(a.Children()) != 0 {
		t.Error("child still listed under old parent")
	}
	if child.Parent() != b {
		t.Error("child not under new parent")
	}
}

func TestRemoveChildKeepsWorldPose(t *testing.T) {
	e, _, win := testEngine(t)
	parent := testImage(t, e, win, Vec2{100, 100}, Vec2{1, 1})
	child, _ := e.NewImage(WidgetOptions{WindowID: win.ID(), Pos: Vec2{5, 5}, Parent: parent})

	if err := parent.RemoveChild(child); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != nil {
		t.Error("child still has a parent")
	}
	if got := child.Transform().Pos(TargetCombined); got != (Vec2{5, 5}) {
		t.Errorf("root pos = %v, want world {5 5}", got)
	}
	child.RemoveFromParent()
}

func TestIsAncestorOf(t *testing.T) {
	e, _, win := testEngine(t)
	a := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	b := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	c := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	_ = a.AddChild(b)
	_ = b.AddChild(c)

	if !a.IsAncestorOf(c) || !b.IsAncestorOf(c) {
		t.Error("missing ancestor")
	}
	if c.IsAncestorOf(a) || a.IsAncestorOf(a) || a.IsAncestorOf(nil) {
		t.Error("unexpected ancestor")
	}
}

func TestDisposeRemovesSubtree(t *testing.T) {
	e, _, win := testEngine(t)
	root := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	mid := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	leaf := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	sibling := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	_ = root.AddChild(mid)
	_ = mid.AddChild(leaf)
	_ = root.AddChild(sibling)

	e.Widgets.Remove(mid.ID())

	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if e.Widgets.Has(leaf.ID()) {
		t.Error("leaf still registered")
	}
	if kids := root.Children(); len(kids) != 1 || kids[0] != sibling {
		t.Errorf("root children = %d, want only sibling", len(kids))
	}
}

func TestResetAfterHierarchyUpdate(t *testing.T) {
	e, _, win := testEngine(t)
	parent := testImage(t, e, win, Vec2{30, 40}, Vec2{1, 1})
	child, _ := e.NewImage(WidgetOptions{WindowID: win.ID(), Parent: parent})
	child.Transform().SetPos(Vec2{7, 7}, TargetLocal, parent.Transform())
	child.Transform().SetSize(Vec2{3, 3}, TargetLocal, parent.Transform())

	child.ResetAfterHierarchyUpdate()
	if got := child.Transform().Pos(TargetCombined); got != (Vec2{30, 40}) {
		t.Errorf("pos = %v, want parent pos", got)
	}
	if got := child.Transform().Size(TargetLocal); got != (Vec2{1, 1}) {
		t.Errorf("local size = %v, want 1x1", got)
	}
}
