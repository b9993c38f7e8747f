package tree

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestInsertAndLookup(t *testing.T) {
	tr := New[string]()
	a := tr.Insert("a", Root)
	b := tr.Insert("b", a)
	c := tr.Insert("c", a)

	if got, _ := tr.Node(b); got != "b" {
		t.Errorf("Node(b) = %q, want b", got)
	}
	if _, ok := tr.Parent(a); ok {
		t.Error("top-level node should report no parent")
	}
	if p, ok := tr.Parent(c); !ok || p != a {
		t.Errorf("Parent(c) = %v, %v; want %v, true", p, ok, a)
	}
	children, _ := tr.Children(a)
	if !slices.Equal(children, []ID{b, c}) {
		t.Errorf("Children(a) = %v, want [%v %v]", children, b, c)
	}
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3", tr.Len())
	}
}

func TestInsertAt(t *testing.T) {
	tr := New[string]()
	a := tr.Insert("a", Root)
	c := tr.Insert("c", Root)
	b := tr.InsertAt("b", Root, 1)
	children, _ := tr.Children(Root)
	if !slices.Equal(children, []ID{a, b, c}) {
		t.Errorf("Children(Root) = %v, want [%v %v %v]", children, a, b, c)
	}
}

func TestReplaceRoot(t *testing.T) {
	tr := New[int]()
	if _, ok := tr.Replace(Root, 1); ok {
		t.Error("Replace(Root) should fail")
	}
	id := tr.Insert(1, Root)
	old, ok := tr.Replace(id, 2)
	if !ok || old != 1 {
		t.Errorf("Replace = %v, %v; want 1, true", old, ok)
	}
	if got, _ := tr.Node(id); got != 2 {
		t.Errorf("Node = %v, want 2", got)
	}
}

func TestRemoveReparentsChildrenInPlace(t *testing.T) {
	tr := New[string]()
	p := tr.Insert("p", Root)
	x := tr.Insert("x", p)
	m := tr.Insert("m", p)
	y := tr.Insert("y", p)
	c1 := tr.Insert("c1", m)
	c2 := tr.Insert("c2", m)

	payload, ok := tr.Remove(m)
	if !ok || payload != "m" {
		t.Fatalf("Remove = %q, %v", payload, ok)
	}
	children, _ := tr.Children(p)
	if !slices.Equal(children, []ID{x, c1, c2, y}) {
		t.Errorf("Children(p) = %v, want [%v %v %v %v]", children, x, c1, c2, y)
	}
	for _, c := range []ID{c1, c2} {
		if parent, _ := tr.Parent(c); parent != p {
			t.Errorf("Parent(%v) = %v, want %v", c, parent, p)
		}
	}
	if tr.Contains(m) {
		t.Error("removed node still present")
	}
}

func TestRemoveAllReturnsSubtree(t *testing.T) {
	tr := New[int]()
	a := tr.Insert(0, Root)
	b := tr.Insert(1, a)
	c := tr.Insert(2, b)
	d := tr.Insert(3, a)
	keep := tr.Insert(4, Root)

	removed := tr.RemoveAll(a)
	slices.Sort(removed)
	want := []ID{a, b, c, d}
	slices.Sort(want)
	if !slices.Equal(removed, want) {
		t.Errorf("RemoveAll = %v, want %v", removed, want)
	}
	for _, id := range want {
		if _, ok := tr.Node(id); ok {
			t.Errorf("Node(%v) still resolves", id)
		}
	}
	children, _ := tr.Children(Root)
	if !slices.Equal(children, []ID{keep}) {
		t.Errorf("Children(Root) = %v, want [%v]", children, keep)
	}
	if tr.RemoveAll(Root) != nil {
		t.Error("RemoveAll(Root) should return nil")
	}
}

func TestIDsAreReused(t *testing.T) {
	tr := New[int]()
	a := tr.Insert(0, Root)
	tr.Remove(a)
	if b := tr.Insert(1, Root); b != a {
		t.Errorf("Insert after Remove = %v, want reused %v", b, a)
	}
}

// TestRandomOperationsKeepInvariants drives the tree with a random mix of
// operations and checks it against a simple parent-map model.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tr := New[int]()
	model := map[ID]ID{}

	for step := range 2000 {
		live := make([]ID, 0, len(model))
		for id := range model {
			live = append(live, id)
		}
		slices.Sort(live)

		switch op := rng.IntN(4); {
		case op <= 1 || len(live) == 0:
			parent := Root
			if len(live) > 0 && rng.IntN(3) > 0 {
				parent = live[rng.IntN(len(live))]
			}
			id := tr.Insert(step, parent)
			if _, dup := model[id]; dup {
				t.Fatalf("step %d: Insert returned live id %v", step, id)
			}
			model[id] = parent
		case op == 2:
			id := live[rng.IntN(len(live))]
			parent := model[id]
			tr.Remove(id)
			delete(model, id)
			for child, p := range model {
				if p == id {
					model[child] = parent
				}
			}
		default:
			id := live[rng.IntN(len(live))]
			want := descendants(model, id)
			got := tr.RemoveAll(id)
			slices.Sort(got)
			if !slices.Equal(got, want) {
				t.Fatalf("step %d: RemoveAll(%v) = %v, want %v", step, id, got, want)
			}
			for _, r := range want {
				delete(model, r)
			}
		}

		if tr.Len() != len(model) {
			t.Fatalf("step %d: Len = %d, model has %d", step, tr.Len(), len(model))
		}
		for id, parent := range model {
			got, ok := tr.Parent(id)
			if !ok {
				got = Root
			}
			if got != parent {
				t.Fatalf("step %d: Parent(%v) = %v, want %v", step, id, got, parent)
			}
			if !slices.Contains(childrenOf(tr, parent), id) {
				t.Fatalf("step %d: %v missing from Children(%v)", step, id, parent)
			}
		}
	}
}

func childrenOf[T any](tr *Tree[T], id ID) []ID {
	children, _ := tr.Children(id)
	return children
}

func descendants(model map[ID]ID, root ID) []ID {
	out := []ID{root}
	for i := 0; i < len(out); i++ {
		for child, parent := range model {
			if parent == out[i] {
				out = append(out, child)
			}
		}
	}
	slices.Sort(out)
	return out
}

func TestWalkAndDepth(t *testing.T) {
	tr := New[string]()
	a := tr.Insert("a", Root)
	b := tr.Insert("b", a)
	tr.Insert("c", b)
	tr.Insert("d", Root)

	var visited []string
	tr.Walk(Root, func(id ID, depth int) bool {
		n, _ := tr.Node(id)
		visited = append(visited, n)
		return true
	})
	if !slices.Equal(visited, []string{"a", "b", "c", "d"}) {
		t.Errorf("Walk order = %v", visited)
	}
	if d := tr.Depth(b); d != 1 {
		t.Errorf("Depth(b) = %d, want 1", d)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tr := New[int]()
	a := tr.Insert(1, Root)
	tr.Insert(2, a)
	c := tr.Clone()
	tr.RemoveAll(a)
	if c.Len() != 2 {
		t.Errorf("clone Len = %d, want 2", c.Len())
	}
}

func TestNodeRefMutatesInPlace(t *testing.T) {
	tr := New[int]()
	a := tr.Insert(1, Root)
	c := tr.Clone()
	*tr.NodeRef(a) = 5
	if got, _ := tr.Node(a); got != 5 {
		t.Errorf("Node(a) = %d, want 5", got)
	}
	if got, _ := c.Node(a); got != 1 {
		t.Errorf("clone Node(a) = %d, want 1", got)
	}
	if tr.NodeRef(99) != nil {
		t.Error("NodeRef of unknown id should be nil")
	}
}
