package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionDrop) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionDrop)
	f.Set(ActionLeft)
	if !f.Has(ActionDrop) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionDrop) {
		t.Error("Clear should remove actions")
	}
}

func TestInputFramePointer(t *testing.T) {
	var f InputFrame
	if _, ok := f.Pointer(); ok {
		t.Error("zero frame should have no pointer")
	}

	f.SetPointer(7)
	f.SetPointer(12)
	col, ok := f.Pointer()
	if !ok || col != 12 {
		t.Errorf("Pointer() = (%d, %v), expected (12, true)", col, ok)
	}

	clone := f.Clone()
	f.Clear()
	if _, ok := f.Pointer(); ok {
		t.Error("Clear should drop the pointer")
	}
	if col, ok := clone.Pointer(); !ok || col != 12 {
		t.Errorf("Clone should keep the pointer, got (%d, %v)", col, ok)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionDrop:  "Drop",
		ActionQuit:  "Quit",
		Action(999): "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}
