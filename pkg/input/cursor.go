package input

// Cursor is the pointer shape requested by the widget under the pointer.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorText
	CursorPointer
)

func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorText:
		return "text"
	case CursorPointer:
		return "pointer"
	default:
		return "unknown"
	}
}
