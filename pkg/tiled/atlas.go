package tiled

import "fmt"

// Rect is a pixel rectangle inside a tileset image.
type Rect struct {
	X, Y          int
	Width, Height int
}

// String returns the rectangle as "WxH+X+Y".
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// SourceRect returns the pixel rectangle of a local tile id. Tiles with
// their own image report that image's full bounds at the origin.
func SourceRect(ts *Tileset, localID uint32) (Rect, error) {
	if int64(localID) >= int64(ts.TileCount) {
		return Rect{}, &TileIndexOutOfRangeError{
			LocalID:   localID,
			TileCount: ts.TileCount,
			Tileset:   ts.Name,
		}
	}

	if tile := ts.Tile(localID); tile != nil && tile.Image != nil {
		return Rect{Width: tile.Image.Width, Height: tile.Image.Height}, nil
	}

	columns := ts.AtlasColumns()
	if columns <= 0 {
		return Rect{}, fmt.Errorf("%w: %q", ErrNoAtlasColumns, ts.Name)
	}

	row := int(localID) / columns
	col := int(localID) % columns
	return Rect{
		X:      ts.Margin + col*(ts.TileWidth+ts.Spacing),
		Y:      ts.Margin + row*(ts.TileHeight+ts.Spacing),
		Width:  ts.TileWidth,
		Height: ts.TileHeight,
	}, nil
}
