// Package tree implements a generic arena-backed forest used for both the
// widget tree and the layer tree.
//
// Every tree has a synthetic Root node that carries no data and is never
// removed. Node identities are pooled and reused after removal.
package tree

import (
	"maps"
	"slices"

	"github.com/terramach/terramach/pkg/pool"
)

// ID identifies a node within one Tree.
type ID int

// Root is the synthetic root present in every tree.
const Root ID = 0

// Tree is a parent/child index over payloads of type T.
// It is not safe for concurrent use.
type Tree[T any] struct {
	ids      *pool.IndexPool
	nodes    map[ID]*T
	parents  map[ID]ID
	children map[ID][]ID
}

// New returns an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{
		ids:      pool.NewIndexPool(int(Root) + 1),
		nodes:    make(map[ID]*T),
		parents:  make(map[ID]ID),
		children: make(map[ID][]ID),
	}
}

// Len returns the number of nodes, excluding the root.
func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

// IsEmpty reports whether the tree holds no nodes besides the root.
func (t *Tree[T]) IsEmpty() bool {
	return len(t.nodes) == 0
}

// Contains reports whether id is a live node.
func (t *Tree[T]) Contains(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Insert appends node as the last child of parent and returns its ID.
// Passing Root inserts at the top level.
func (t *Tree[T]) Insert(node T, parent ID) ID {
	return t.InsertAt(node, parent, -1)
}

// InsertAt inserts node as the index-th child of parent. An index that is
// negative or past the end appends.
func (t *Tree[T]) InsertAt(node T, parent ID, index int) ID {
	id := ID(t.ids.Take())
	t.nodes[id] = &node
	t.parents[id] = parent
	siblings := t.children[parent]
	if index < 0 || index >= len(siblings) {
		t.children[parent] = append(siblings, id)
	} else {
		t.children[parent] = slices.Insert(siblings, index, id)
	}
	return id
}

// Replace swaps the payload of id and returns the previous one.
// It reports false for the root and for unknown IDs.
func (t *Tree[T]) Replace(id ID, node T) (T, bool) {
	var zero T
	if id == Root {
		return zero, false
	}
	ref, ok := t.nodes[id]
	if !ok {
		return zero, false
	}
	old := *ref
	*ref = node
	return old, true
}

// Remove detaches a single node and returns its payload. The node's
// children take its place, in order, under its parent.
func (t *Tree[T]) Remove(id ID) (T, bool) {
	var zero T
	if id == Root {
		return zero, false
	}
	ref, ok := t.nodes[id]
	if !ok {
		return zero, false
	}
	delete(t.nodes, id)
	t.ids.Give(int(id))

	parent := t.parents[id]
	delete(t.parents, id)
	orphans := t.children[id]
	delete(t.children, id)
	for _, child := range orphans {
		t.parents[child] = parent
	}

	siblings := t.children[parent]
	if i := slices.Index(siblings, id); i >= 0 {
		siblings = slices.Replace(siblings, i, i+1, orphans...)
	} else {
		siblings = append(siblings, orphans...)
	}
	t.setChildren(parent, siblings)
	return *ref, true
}

// RemoveAll removes id and its entire subtree and returns every removed ID,
// id first. It returns nil for the root and for unknown IDs.
func (t *Tree[T]) RemoveAll(id ID) []ID {
	if id == Root || !t.Contains(id) {
		return nil
	}
	parent := t.parents[id]
	if siblings := t.children[parent]; len(siblings) > 0 {
		t.setChildren(parent, slices.DeleteFunc(siblings, func(c ID) bool { return c == id }))
	}
	var removed []ID
	t.removeSubtree(id, &removed)
	return removed
}

func (t *Tree[T]) removeSubtree(id ID, removed *[]ID) {
	delete(t.nodes, id)
	delete(t.parents, id)
	t.ids.Give(int(id))
	*removed = append(*removed, id)
	children := t.children[id]
	delete(t.children, id)
	for _, child := range children {
		t.removeSubtree(child, removed)
	}
}

func (t *Tree[T]) setChildren(parent ID, children []ID) {
	if len(children) == 0 {
		delete(t.children, parent)
		return
	}
	t.children[parent] = children
}

// Node returns the payload of id.
func (t *Tree[T]) Node(id ID) (T, bool) {
	ref, ok := t.nodes[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *ref, true
}

// NodeRef returns a pointer to the payload of id for in-place mutation, or
// nil. The pointer stays valid until id is removed.
func (t *Tree[T]) NodeRef(id ID) *T {
	return t.nodes[id]
}

// Parent returns the parent of id. It reports false for top-level nodes,
// whose parent is the invisible root, and for unknown IDs.
func (t *Tree[T]) Parent(id ID) (ID, bool) {
	parent, ok := t.parents[id]
	if !ok || parent == Root {
		return Root, false
	}
	return parent, true
}

// Children returns the ordered children of parent. The returned slice must
// not be modified.
func (t *Tree[T]) Children(parent ID) ([]ID, bool) {
	children, ok := t.children[parent]
	return children, ok
}

// ChildCount returns the number of children of parent.
func (t *Tree[T]) ChildCount(parent ID) int {
	return len(t.children[parent])
}

// Depth returns the number of ancestors of id below the root.
func (t *Tree[T]) Depth(id ID) int {
	depth := 0
	for {
		parent, ok := t.Parent(id)
		if !ok {
			return depth
		}
		depth++
		id = parent
	}
}

// Walk visits the subtree of id depth-first in child order. Returning false
// from fn skips the node's children. Walking Root visits every node.
func (t *Tree[T]) Walk(id ID, fn func(id ID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree[T]) walk(id ID, depth int, fn func(ID, int) bool) {
	if id != Root {
		if !fn(id, depth) {
			return
		}
		depth++
	}
	for _, child := range t.children[id] {
		t.walk(child, depth, fn)
	}
}

// Clone returns a copy of the tree. Payloads are copied by assignment.
func (t *Tree[T]) Clone() *Tree[T] {
	c := &Tree[T]{
		ids:      t.ids.Clone(),
		nodes:    make(map[ID]*T, len(t.nodes)),
		parents:  maps.Clone(t.parents),
		children: make(map[ID][]ID, len(t.children)),
	}
	for id, ref := range t.nodes {
		node := *ref
		c.nodes[id] = &node
	}
	for id, children := range t.children {
		c.children[id] = slices.Clone(children)
	}
	return c
}
