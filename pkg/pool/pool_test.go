package pool

import "testing"

func TestSpawnBorrow(t *testing.T) {
	p := New[string](4)
	h := p.Spawn("root")

	v, ok := p.Borrow(h)
	if !ok {
		t.Fatal("expected live handle to resolve")
	}
	if *v != "root" {
		t.Errorf("Borrow = %q, want %q", *v, "root")
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
}

func TestNoneNeverResolves(t *testing.T) {
	p := New[int](0)
	p.Spawn(1)

	if _, ok := p.Borrow(None[int]()); ok {
		t.Error("None handle should not resolve")
	}
	if !None[int]().IsNone() {
		t.Error("None().IsNone() = false")
	}
	if p.IsValid(NewHandle[int](42, 1)) {
		t.Error("out of range handle should be invalid")
	}
}

func TestFreeInvalidatesHandle(t *testing.T) {
	p := New[int](0)
	h := p.Spawn(7)

	v, ok := p.Free(h)
	if !ok || v != 7 {
		t.Fatalf("Free = (%d, %v), want (7, true)", v, ok)
	}
	if _, ok := p.Borrow(h); ok {
		t.Error("freed handle should not resolve")
	}
	if _, ok := p.Free(h); ok {
		t.Error("double free should fail")
	}
	if p.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Len())
	}
}

func TestReusedSlotRejectsStaleHandle(t *testing.T) {
	p := New[int](0)
	old := p.Spawn(1)
	p.Free(old)

	fresh := p.Spawn(2)
	if fresh.Index() != old.Index() {
		t.Fatalf("expected slot reuse, got index %d want %d", fresh.Index(), old.Index())
	}
	if fresh.Generation() == old.Generation() {
		t.Fatal("reused slot must carry a new generation")
	}
	for i := 0; i < 3; i++ {
		if _, ok := p.Borrow(old); ok {
			t.Fatalf("stale handle resolved on attempt %d", i)
		}
	}
	v, ok := p.Borrow(fresh)
	if !ok || *v != 2 {
		t.Errorf("Borrow(fresh) = (%v, %v), want (2, true)", v, ok)
	}
}

func TestBorrowedPointerSurvivesGrowth(t *testing.T) {
	p := New[int](1)
	h := p.Spawn(10)
	ptr, _ := p.Borrow(h)

	for i := 0; i < 100; i++ {
		p.Spawn(i)
	}
	*ptr = 11

	v, _ := p.Borrow(h)
	if *v != 11 {
		t.Errorf("value = %d, want 11", *v)
	}
}

func TestAllSkipsFreed(t *testing.T) {
	p := New[string](0)
	a := p.Spawn("a")
	b := p.Spawn("b")
	c := p.Spawn("c")
	p.Free(b)

	var got []Handle[string]
	for h := range p.All() {
		got = append(got, h)
	}
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("All = %v, want [%v %v]", got, a, c)
	}
}

func TestClear(t *testing.T) {
	p := New[int](0)
	a := p.Spawn(1)
	b := p.Spawn(2)
	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Len())
	}
	if p.IsValid(a) || p.IsValid(b) {
		t.Error("handles issued before Clear must be stale")
	}
	h := p.Spawn(3)
	if h.Index() != 0 {
		t.Errorf("first spawn after Clear reused index %d, want 0", h.Index())
	}
	if hh, ok := p.HandleAt(0); !ok || hh != h {
		t.Errorf("HandleAt(0) = (%v, %v), want (%v, true)", hh, ok, h)
	}
}
