package app

import "github.com/terramach/terramach/pkg/input"

// Cursors is the stack of cursors pushed by hovered widgets. The current
// cursor is the top of the stack, or the arrow when it is empty.
type Cursors struct {
	stack    []input.Cursor
	onChange func(input.Cursor)
}

// NewCursors returns an empty stack. onChange, if not nil, is called
// whenever the current cursor changes.
func NewCursors(onChange func(input.Cursor)) *Cursors {
	return &Cursors{onChange: onChange}
}

// Current returns the cursor to display.
func (c *Cursors) Current() input.Cursor {
	if n := len(c.stack); n > 0 {
		return c.stack[n-1]
	}
	return input.CursorArrow
}

// Len returns the stack depth.
func (c *Cursors) Len() int {
	return len(c.stack)
}

// Push makes cursor current.
func (c *Cursors) Push(cursor input.Cursor) {
	before := c.Current()
	c.stack = append(c.stack, cursor)
	c.changed(before)
}

// Pop restores the previous cursor. Popping an empty stack does nothing.
func (c *Cursors) Pop() {
	if len(c.stack) == 0 {
		return
	}
	before := c.Current()
	c.stack = c.stack[:len(c.stack)-1]
	c.changed(before)
}

func (c *Cursors) changed(before input.Cursor) {
	if now := c.Current(); now != before && c.onChange != nil {
		c.onChange(now)
	}
}
