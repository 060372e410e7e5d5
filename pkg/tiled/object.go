package tiled

import (
	"fmt"

	"github.com/Faultbox/midgard-tiled/pkg/math"
)

// Shape tags the geometry of an object.
type Shape int

// Object shapes.
const (
	ShapeRect Shape = iota
	ShapePoint
	ShapeEllipse
	ShapePolygon
	ShapePolyline
	ShapeText
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "Rect"
	case ShapePoint:
		return "Point"
	case ShapeEllipse:
		return "Ellipse"
	case ShapePolygon:
		return "Polygon"
	case ShapePolyline:
		return "Polyline"
	case ShapeText:
		return "Text"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Text is the payload of a text object.
type Text struct {
	Content    string
	FontFamily string
	PixelSize  int
	Wrap       bool
	Color      string
	Bold       bool
	Italic     bool
	HAlign     string
	VAlign     string
}

// Object is an entry of an object group. Points are relative to (X, Y)
// and only set for polygons and polylines.
type Object struct {
	ID         int
	Name       string
	Type       string
	X, Y       float32
	Width      float32
	Height     float32
	Rotation   float32 // degrees clockwise
	GID        Cell    // tile objects; Index 0 otherwise
	Visible    bool
	Template   string
	Shape      Shape
	Points     []math.Vec2
	Text       *Text
	Properties Properties
}

// IsTile reports whether the object draws a tile.
func (o *Object) IsTile() bool {
	return o.GID.Index != 0
}

// AbsolutePoints returns the polygon or polyline vertices in map space,
// with the object's rotation applied around its origin.
func (o *Object) AbsolutePoints() []math.Vec2 {
	origin := math.Vec2{X: o.X, Y: o.Y}
	out := make([]math.Vec2, len(o.Points))
	for i, p := range o.Points {
		out[i] = origin.Add(p.Rotate(o.Rotation))
	}
	return out
}

// Extent returns the axis-aligned box covered by a polygon or polyline
// object in map space. Other shapes report their own rectangle, ignoring
// rotation.
func (o *Object) Extent() (lo, hi math.Vec2) {
	if len(o.Points) > 0 {
		return math.Bounds(o.AbsolutePoints())
	}
	lo = math.Vec2{X: o.X, Y: o.Y}
	return lo, lo.Add(math.Vec2{X: o.Width, Y: o.Height})
}
