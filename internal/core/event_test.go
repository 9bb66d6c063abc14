package core

import "testing"

func TestEventBufferDrain(t *testing.T) {
	var b EventBuffer
	if b.Drain() != nil {
		t.Error("empty buffer should drain to nil")
	}

	b.Emit("hit")
	b.Emit("brick-break")
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", b.Len())
	}

	got := b.Drain()
	if len(got) != 2 || got[0] != "hit" || got[1] != "brick-break" {
		t.Errorf("Drain() = %v, expected [hit brick-break]", got)
	}
	if b.Len() != 0 {
		t.Error("buffer should be empty after Drain")
	}
}

func TestTee(t *testing.T) {
	var a, b EventBuffer
	sink := Tee(&a, nil, &b)
	sink.Emit("power-collected")

	if a.Len() != 1 || b.Len() != 1 {
		t.Errorf("Tee should forward to every sink, got %d and %d", a.Len(), b.Len())
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.SetPointer(12.5)

	c := f.Clone()
	f.Clear()

	if !c.Has(ActionLeft) || !c.PointerActive || c.PointerX != 12.5 {
		t.Errorf("Clone should be independent of the source, got %+v", c)
	}
	if f.Has(ActionLeft) || f.PointerActive {
		t.Error("Clear should reset actions and pointer")
	}
}
