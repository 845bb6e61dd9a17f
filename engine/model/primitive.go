package model

// Primitive is the topology a DrawInfo is drawn with.
type Primitive int

const (
	// PrimitiveTriangles draws a triangle list.
	PrimitiveTriangles Primitive = iota
	// PrimitiveLines draws a line list. Used by wireframes.
	PrimitiveLines
)

func (p Primitive) String() string {
	if p == PrimitiveLines {
		return "lines"
	}
	return "triangles"
}
