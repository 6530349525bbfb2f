package vessel

import (
	"errors"
	"testing"
)

func buildStack(t *testing.T) *Vessel {
	t.Helper()
	v := New("v1", "Stack")
	for _, p := range []*Part{
		NewPart("cone", "fairingCone"),
		NewPart("dec", "decoupler"),
		NewPart("a", "probe"),
		NewPart("b", "tank"),
		NewPart("c", "antenna"),
	} {
		if err := v.AddPart(p); err != nil {
			t.Fatalf("AddPart(%s) error = %v", p.ID(), err)
		}
	}
	mustNil(t, v.Link("cone", "bottom", "dec", "bottom"))
	mustNil(t, v.Link("dec", "top", "a", "bottom"))
	mustNil(t, v.Link("a", "top", "b", "bottom"))
	mustNil(t, v.SurfaceAttach("c", "b"))
	return v
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVesselNewGeneratesID(t *testing.T) {
	v := New("", "Anon")
	if v.ID() == "" {
		t.Error("ID() is empty, want generated UUID")
	}
	if v.Name() != "Anon" {
		t.Errorf("Name() = %q, want Anon", v.Name())
	}
}

func TestVesselAddPart(t *testing.T) {
	v := New("v", "")

	t.Run("Nil", func(t *testing.T) {
		if err := v.AddPart(nil); !errors.Is(err, ErrInvalidPart) {
			t.Errorf("AddPart(nil) error = %v, want ErrInvalidPart", err)
		}
	})

	t.Run("EmptyID", func(t *testing.T) {
		if err := v.AddPart(NewPart("", "x")); !errors.Is(err, ErrInvalidPart) {
			t.Errorf("AddPart(empty id) error = %v, want ErrInvalidPart", err)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		mustNil(t, v.AddPart(NewPart("p", "x")))
		if err := v.AddPart(NewPart("p", "y")); !errors.Is(err, ErrDuplicatePart) {
			t.Errorf("AddPart(dup) error = %v, want ErrDuplicatePart", err)
		}
	})
}

func TestPartFindAttachNodes(t *testing.T) {
	v := New("v", "")
	mustNil(t, v.AddPart(NewPart("dec", "decoupler")))
	mustNil(t, v.AddPart(NewPart("p1", "probe")))
	mustNil(t, v.AddPart(NewPart("p2", "probe")))
	mustNil(t, v.Attach("dec", "top", "p1"))
	mustNil(t, v.Attach("dec", "top", "p2"))
	mustNil(t, v.Attach("dec", "top", ""))

	dec := v.Part("dec")

	if n := dec.FindAttachNode("top"); n == nil || n.Attached() != v.Part("p1") {
		t.Errorf("FindAttachNode(top) = %v, want node with p1", n)
	}
	if n := dec.FindAttachNode("bottom"); n != nil {
		t.Errorf("FindAttachNode(bottom) = %v, want nil", n)
	}

	nodes := dec.FindAttachNodes("top")
	if len(nodes) != 3 {
		t.Fatalf("FindAttachNodes(top) returned %d nodes, want 3", len(nodes))
	}
	if nodes[2].Attached() != nil {
		t.Errorf("third node attached = %v, want nil", nodes[2].Attached())
	}
	if got := dec.FindAttachNodes("missing"); got != nil {
		t.Errorf("FindAttachNodes(missing) = %v, want nil", got)
	}
}

func TestAttachUnknownPart(t *testing.T) {
	v := New("v", "")
	mustNil(t, v.AddPart(NewPart("a", "x")))

	if err := v.Attach("a", "top", "ghost"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("Attach to unknown error = %v, want ErrPartNotFound", err)
	}
	if err := v.SurfaceAttach("ghost", "a"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("SurfaceAttach unknown child error = %v, want ErrPartNotFound", err)
	}
}

func TestSetShieldedIdempotent(t *testing.T) {
	p := NewPart("a", "x")

	if !p.SetShielded(true) {
		t.Error("first SetShielded(true) reported no change")
	}
	if p.SetShielded(true) {
		t.Error("second SetShielded(true) reported a change")
	}
	if !p.Shielded() {
		t.Error("Shielded() = false, want true")
	}
	if !p.SetShielded(false) {
		t.Error("SetShielded(false) reported no change")
	}
}

func TestVesselDecouple(t *testing.T) {
	v := buildStack(t)

	calls := 0
	v.OnDecoupled("cone", func() { calls++ })
	cancelled := 0
	cancel := v.OnDecoupled("cone", func() { cancelled++ })
	cancel()

	mustNil(t, v.Decouple("cone", "bottom"))

	if calls != 1 {
		t.Errorf("decoupled callback ran %d times, want 1", calls)
	}
	if cancelled != 0 {
		t.Errorf("cancelled callback ran %d times, want 0", cancelled)
	}
	if !v.Part("cone").Decoupled() {
		t.Error("Decoupled() = false after Decouple")
	}
	if n := v.Part("cone").FindAttachNode("bottom"); n.Attached() != nil {
		t.Errorf("cone bottom still attached to %v", n.Attached())
	}
	if n := v.Part("dec").FindAttachNode("bottom"); n.Attached() != nil {
		t.Errorf("decoupler back-link still attached to %v", n.Attached())
	}
	// Untouched link survives.
	if n := v.Part("dec").FindAttachNode("top"); n.Attached() != v.Part("a") {
		t.Errorf("decoupler top = %v, want a", n.Attached())
	}

	// Second decouple is a no-op.
	mustNil(t, v.Decouple("cone", ""))
	if calls != 1 {
		t.Errorf("decoupled callback ran %d times after second Decouple, want 1", calls)
	}
}

func TestVesselDestroyPart(t *testing.T) {
	v := buildStack(t)
	b := v.Part("b")

	destroyed := false
	v.OnDestroyed("b", func() { destroyed = true })

	mustNil(t, v.DestroyPart("b"))

	if !destroyed {
		t.Error("destroyed callback not called")
	}
	if b.Alive() {
		t.Error("Alive() = true after DestroyPart")
	}
	if v.Part("b") != nil {
		t.Error("Part(b) still resolvable")
	}
	if v.PartCount() != 4 {
		t.Errorf("PartCount() = %d, want 4", v.PartCount())
	}
	if n := v.Part("a").FindAttachNode("top"); n.Attached() != nil {
		t.Errorf("a.top still points at %v", n.Attached())
	}
	if v.Part("c").SurfaceParent() != nil {
		t.Error("c still surface attached to destroyed part")
	}
	if err := v.DestroyPart("b"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("second DestroyPart error = %v, want ErrPartNotFound", err)
	}
}
