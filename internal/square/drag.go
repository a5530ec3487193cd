package square

// TouchKind is the phase of a touch contact.
type TouchKind int

const (
	TouchDown TouchKind = iota
	TouchMove
	TouchUp
)

func (k TouchKind) String() string {
	switch k {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	default:
		return "unknown"
	}
}

// Square is the draggable hit region. X, Y is its bottom-left corner in
// normalized device coordinates.
type Square struct {
	X, Y float32
	Size float32
}

func NewSquare(x, y, size float32) Square {
	return Square{X: x, Y: y, Size: size}
}

// Contains reports whether (x, y) lies strictly inside the square.
func (s Square) Contains(x, y float32) bool {
	return x > s.X && x < s.X+s.Size && y > s.Y && y < s.Y+s.Size
}

// CenterOn moves the square so that its middle sits under (x, y).
func (s *Square) CenterOn(x, y float32) {
	s.X = x - s.Size/2
	s.Y = y - s.Size/2
}

// DragModel tracks a single contact dragging the square. A second
// concurrent contact is not distinguished from the first.
type DragModel struct {
	Square   Square
	dragging bool
}

func NewDragModel(sq Square) *DragModel {
	return &DragModel{Square: sq}
}

func (d *DragModel) Dragging() bool {
	return d.dragging
}

// ToNDC converts surface pixels (origin bottom-left) to normalized device
// coordinates for a width x height viewport.
func ToNDC(screenX, screenY, width, height int) (float32, float32) {
	x := 2*float32(screenX)/float32(width) - 1
	y := 2*float32(screenY)/float32(height) - 1
	return x, y
}

// Touch applies one touch event at NDC (x, y) and returns the drag event it
// caused, if any.
func (d *DragModel) Touch(kind TouchKind, x, y float32) (EventType, bool) {
	if d.dragging {
		switch kind {
		case TouchMove:
			d.Square.CenterOn(x, y)
			return EventDragMove, true
		case TouchUp:
			d.dragging = false
			return EventDragEnd, true
		}
		return 0, false
	}
	if kind == TouchDown && d.Square.Contains(x, y) {
		d.dragging = true
		d.Square.CenterOn(x, y)
		return EventDragStart, true
	}
	return 0, false
}
