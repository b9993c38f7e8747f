package pool

import "testing"

func TestIndexPoolReusesGivenIndices(t *testing.T) {
	p := NewIndexPool(1)
	a := p.Take()
	b := p.Take()
	if a != 1 || b != 2 {
		t.Fatalf("Take() = %d, %d, want 1, 2", a, b)
	}
	p.Give(a)
	if got := p.Take(); got != a {
		t.Errorf("Take() after Give(%d) = %d, want %d", a, got, a)
	}
	if got := p.Take(); got != 3 {
		t.Errorf("Take() = %d, want 3", got)
	}
	if got := p.InUse(); got != 3 {
		t.Errorf("InUse = %d, want 3", got)
	}
}

func TestIndexPoolZeroValue(t *testing.T) {
	var p IndexPool
	if got := p.Take(); got != 0 {
		t.Errorf("zero pool Take() = %d, want 0", got)
	}
}
