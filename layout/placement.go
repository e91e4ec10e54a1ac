package layout

import "fmt"

type Kind string

const (
	KindWrite  Kind = "write"
	KindMerge  Kind = "merge"
	KindBorder Kind = "border"
)

// Range is an inclusive, zero-based rectangle of grid cells.
type Range struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

func CellRange(c Cell) Range {
	return Range{Top: c.Row, Left: c.Col, Bottom: c.Row, Right: c.Col}
}

func (r Range) TopLeft() Cell {
	return Cell{Row: r.Top, Col: r.Left}
}

func (r Range) BottomRight() Cell {
	return Cell{Row: r.Bottom, Col: r.Right}
}

func (r Range) IsCell() bool {
	return r.Top == r.Bottom && r.Left == r.Right
}

func (r Range) Overlaps(o Range) bool {
	return r.Left <= o.Right && o.Left <= r.Right && r.Top <= o.Bottom && o.Top <= r.Bottom
}

func (r Range) String() string {
	if r.IsCell() {
		return r.TopLeft().String()
	}
	return fmt.Sprintf("%s:%s", r.TopLeft(), r.BottomRight())
}

// Placement is one instruction for the styling collaborator: write a value,
// merge a range (pre-filled with Value), or draw edges on a range.
type Placement struct {
	Kind   Kind   `json:"kind"`
	Range  Range  `json:"range"`
	Value  any    `json:"value,omitempty"`
	Role   Role   `json:"role,omitempty"`
	Format Format `json:"format,omitempty"`
	Edges  Edges  `json:"edges,omitempty"`
	Align  Align  `json:"align,omitempty"`
	Axis   Axis   `json:"axis"`
	Level  int    `json:"level"`
}

func (p Placement) String() string {
	return fmt.Sprintf("%s %s %s level=%d role=%s edges=%s value=%v", p.Kind, p.Axis, p.Range, p.Level, p.Role, p.Edges, p.Value)
}

// Placeholder pre-fills merged label blocks so that a block whose label is
// never written shows up instead of staying blank.
const Placeholder = "Forgot to Import Data!"
