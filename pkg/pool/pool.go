// Package pool hands out reusable integer identities.
package pool

// IndexPool allocates integer indices, preferring previously released ones
// before growing the counter. The zero value starts at 0.
type IndexPool struct {
	start int
	next  int
	free  []int
}

// NewIndexPool returns a pool whose first fresh index is start.
func NewIndexPool(start int) *IndexPool {
	return &IndexPool{start: start, next: start}
}

// Take returns a free index.
func (p *IndexPool) Take() int {
	if n := len(p.free); n > 0 {
		index := p.free[n-1]
		p.free = p.free[:n-1]
		return index
	}
	index := p.next
	p.next++
	return index
}

// Give returns index to the pool for reuse.
func (p *IndexPool) Give(index int) {
	p.free = append(p.free, index)
}

// InUse reports how many indices are currently taken.
func (p *IndexPool) InUse() int {
	return p.next - p.start - len(p.free)
}

// Clone returns an independent copy of the pool.
func (p *IndexPool) Clone() *IndexPool {
	return &IndexPool{start: p.start, next: p.next, free: append([]int(nil), p.free...)}
}
