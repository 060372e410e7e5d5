package tiled

import "time"

// Image references an image file by path. Pixel data is never loaded.
type Image struct {
	Source string
	Width  int
	Height int
	Trans  string // transparent color, "RRGGBB"
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID   uint32
	Duration time.Duration
}

// Terrain is a legacy terrain type definition.
type Terrain struct {
	Name   string
	TileID int
}

// TileOffset is the drawing offset applied to every tile of a tileset.
type TileOffset struct {
	X, Y int
}

// Grid describes how tiles of an image collection are laid out for
// isometric rendering.
type Grid struct {
	Orientation string
	Width       int
	Height      int
}

// WangColor is one terrain color of a wang set.
type WangColor struct {
	Name        string
	Color       string
	Tile        int
	Probability float64
}

// WangTile assigns colors to the edges and corners of a tile, clockwise
// from the top edge. Zero means no color.
type WangTile struct {
	TileID uint32
	WangID [8]uint8
}

// WangSet is a set of automapping rules for terrain transitions.
type WangSet struct {
	Name   string
	Type   string // "corner", "edge" or "mixed"
	Tile   int    // representative tile, -1 when unset
	Colors []WangColor
	Tiles  []WangTile
}

// TileColors returns the wang id of a local tile.
func (ws *WangSet) TileColors(id uint32) ([8]uint8, bool) {
	for _, t := range ws.Tiles {
		if t.TileID == id {
			return t.WangID, true
		}
	}
	return [8]uint8{}, false
}

// Tile holds per-tile overrides. Only tiles with extra data are present.
type Tile struct {
	ID          uint32
	Type        string
	Probability float64
	Terrain     [4]int // corner terrain indices, -1 when unset
	Image       *Image // standalone image for image-collection tilesets
	Animation   []Frame
	ObjectGroup *ObjectGroup // collision shapes, in tile pixel space
	Properties  Properties
}

// Tileset describes a tile atlas or image collection.
type Tileset struct {
	Name       string
	Class      string
	Source     string // path the tileset was loaded from, empty when inline
	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	TileCount  int
	Columns    int
	Image      *Image
	TileOffset TileOffset
	Grid       *Grid
	Tiles      map[uint32]*Tile
	Terrains   []Terrain
	WangSets   []WangSet
	Properties Properties
}

// Tile returns the override record for a local id, or nil.
func (ts *Tileset) Tile(id uint32) *Tile {
	if ts.Tiles == nil {
		return nil
	}
	return ts.Tiles[id]
}

// AtlasColumns returns the number of tiles per atlas row. When the
// tileset does not declare it, the count is derived from the image width.
func (ts *Tileset) AtlasColumns() int {
	if ts.Columns > 0 {
		return ts.Columns
	}
	if ts.Image == nil || ts.TileWidth <= 0 {
		return 0
	}
	usable := ts.Image.Width - 2*ts.Margin + ts.Spacing
	if usable <= 0 {
		return 0
	}
	return usable / (ts.TileWidth + ts.Spacing)
}

// TilesetRef binds a tileset to the first global id it owns.
// Tileset is nil when an external source could not be loaded.
type TilesetRef struct {
	FirstGID uint32
	Source   string
	Tileset  *Tileset
}

// Name returns the tileset name, falling back to the source path.
func (r TilesetRef) Name() string {
	if r.Tileset != nil && r.Tileset.Name != "" {
		return r.Tileset.Name
	}
	return r.Source
}
