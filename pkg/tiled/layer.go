package tiled

import "fmt"

// LayerKind identifies the concrete type behind a Layer.
type LayerKind int

// Layer kinds.
const (
	KindTileLayer LayerKind = iota
	KindObjectGroup
	KindImageLayer
	KindGroup
)

// String returns the element name used in map documents.
func (k LayerKind) String() string {
	switch k {
	case KindTileLayer:
		return "layer"
	case KindObjectGroup:
		return "objectgroup"
	case KindImageLayer:
		return "imagelayer"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Layer is one of *TileLayer, *ObjectGroup, *ImageLayer or *GroupLayer.
// Callers switch on the concrete type; the set is closed.
type Layer interface {
	Base() *LayerBase
	Kind() LayerKind
	isLayer()
}

// LayerBase holds the fields shared by every layer kind. Visible and
// Locked are editor state and are carried through untouched.
type LayerBase struct {
	ID         int
	Name       string
	Class      string
	OffsetX    float32
	OffsetY    float32
	ParallaxX  float32
	ParallaxY  float32
	Opacity    float32
	TintColor  string
	Visible    bool
	Locked     bool
	Properties Properties
}

// Base returns the shared layer fields.
func (b *LayerBase) Base() *LayerBase { return b }

func (*LayerBase) isLayer() {}

// TileLayer is a grid of cells. Finite maps fill Cells; infinite maps
// fill Chunks instead.
type TileLayer struct {
	LayerBase
	Width       int
	Height      int
	Encoding    Encoding
	Compression Compression
	Cells       []Cell
	Chunks      *ChunkSet
}

// Kind implements Layer.
func (*TileLayer) Kind() LayerKind { return KindTileLayer }

// Infinite reports whether the layer stores its cells in chunks.
func (l *TileLayer) Infinite() bool {
	return l.Chunks != nil
}

// CellAt returns the cell at tile (x, y). Coordinates outside the layer,
// or in a gap between chunks, report false.
func (l *TileLayer) CellAt(x, y int) (Cell, bool) {
	if l.Chunks != nil {
		return l.Chunks.CellAt(x, y)
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Cell{}, false
	}
	return l.Cells[y*l.Width+x], true
}

// CountTiles returns the number of non-empty cells.
func (l *TileLayer) CountTiles() int {
	count := 0
	if l.Chunks != nil {
		for _, c := range l.Chunks.Chunks() {
			for _, cell := range c.Cells {
				if !cell.Empty() {
					count++
				}
			}
		}
		return count
	}
	for _, cell := range l.Cells {
		if !cell.Empty() {
			count++
		}
	}
	return count
}

// ObjectGroup is a layer of free-positioned objects.
type ObjectGroup struct {
	LayerBase
	Color     string
	DrawOrder string // "topdown" or "index"
	Objects   []Object
}

// Kind implements Layer.
func (*ObjectGroup) Kind() LayerKind { return KindObjectGroup }

// ImageLayer draws a single image.
type ImageLayer struct {
	LayerBase
	Image   *Image
	RepeatX bool
	RepeatY bool
}

// Kind implements Layer.
func (*ImageLayer) Kind() LayerKind { return KindImageLayer }

// GroupLayer nests other layers.
type GroupLayer struct {
	LayerBase
	Layers []Layer
}

// Kind implements Layer.
func (*GroupLayer) Kind() LayerKind { return KindGroup }

// WalkLayers calls fn for every layer depth-first in document order,
// descending into groups. Returning false stops the walk.
func WalkLayers(layers []Layer, fn func(Layer) bool) bool {
	for _, l := range layers {
		if !fn(l) {
			return false
		}
		if g, ok := l.(*GroupLayer); ok {
			if !WalkLayers(g.Layers, fn) {
				return false
			}
		}
	}
	return true
}
