package tmx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-tiled/pkg/math"
	"github.com/Faultbox/midgard-tiled/pkg/tiled"
)

// Layer element names.
const (
	elemLayer       = "layer"
	elemObjectGroup = "objectgroup"
	elemImageLayer  = "imagelayer"
	elemGroup       = "group"
)

func convertProperties(raw []xmlProperty) tiled.Properties {
	if len(raw) == 0 {
		return nil
	}
	props := make(tiled.Properties, 0, len(raw))
	for _, p := range raw {
		typ := tiled.PropertyType(p.Type)
		if typ == "" {
			typ = tiled.PropertyString
		}
		// Multi-line strings are stored as element text instead of an attribute.
		value := p.Value
		if value == "" && typ == tiled.PropertyString {
			value = p.Text
		}
		props = append(props, tiled.Property{Name: p.Name, Type: typ, Value: value})
	}
	return props
}

func convertImage(raw *xmlImage) *tiled.Image {
	if raw == nil {
		return nil
	}
	return &tiled.Image{
		Source: raw.Source,
		Width:  raw.Width,
		Height: raw.Height,
		Trans:  raw.Trans,
	}
}

func (l *Loader) convertTileset(raw *xmlTileset, source string) (*tiled.Tileset, error) {
	ts := &tiled.Tileset{
		Name:       raw.Name,
		Class:      raw.Class,
		Source:     source,
		TileWidth:  raw.TileWidth,
		TileHeight: raw.TileHeight,
		Spacing:    raw.Spacing,
		Margin:     raw.Margin,
		TileCount:  raw.TileCount,
		Columns:    raw.Columns,
		Image:      convertImage(raw.Image),
		Properties: convertProperties(raw.Properties),
	}
	if raw.TileOffset != nil {
		ts.TileOffset = tiled.TileOffset{X: raw.TileOffset.X, Y: raw.TileOffset.Y}
	}
	if raw.Grid != nil {
		ts.Grid = &tiled.Grid{
			Orientation: raw.Grid.Orientation,
			Width:       raw.Grid.Width,
			Height:      raw.Grid.Height,
		}
	}

	for _, t := range raw.Terrains {
		ts.Terrains = append(ts.Terrains, tiled.Terrain{Name: t.Name, TileID: t.Tile})
	}

	for _, ws := range raw.WangSets {
		set, err := convertWangSet(ws)
		if err != nil {
			return nil, fmt.Errorf("wangset %q: %w", ws.Name, err)
		}
		ts.WangSets = append(ts.WangSets, set)
	}

	if len(raw.Tiles) > 0 {
		ts.Tiles = make(map[uint32]*tiled.Tile, len(raw.Tiles))
	}
	for i := range raw.Tiles {
		tile, err := convertTile(&raw.Tiles[i])
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", raw.Tiles[i].ID, err)
		}
		ts.Tiles[tile.ID] = tile
	}

	l.log.Debug("tileset converted",
		zap.String("name", ts.Name),
		zap.Int("tiles", ts.TileCount),
		zap.Int("overrides", len(ts.Tiles)))
	return ts, nil
}

func convertTile(raw *xmlTile) (*tiled.Tile, error) {
	tile := &tiled.Tile{
		ID:          raw.ID,
		Type:        raw.Type,
		Probability: 1,
		Terrain:     [4]int{-1, -1, -1, -1},
		Image:       convertImage(raw.Image),
		Properties:  convertProperties(raw.Properties),
	}
	if tile.Type == "" {
		tile.Type = raw.Class
	}
	if raw.Probability != nil {
		tile.Probability = *raw.Probability
	}
	if raw.Terrain != "" {
		terrain, err := parseTerrain(raw.Terrain)
		if err != nil {
			return nil, err
		}
		tile.Terrain = terrain
	}
	for _, f := range raw.Animation {
		tile.Animation = append(tile.Animation, tiled.Frame{
			TileID:   f.TileID,
			Duration: time.Duration(f.Duration) * time.Millisecond,
		})
	}
	if raw.ObjectGroup != nil {
		group, err := convertObjectGroup(raw.ObjectGroup)
		if err != nil {
			return nil, fmt.Errorf("objectgroup: %w", err)
		}
		tile.ObjectGroup = group
	}
	return tile, nil
}

// parseTerrain reads "a,b,c,d" corner indices. Empty corners become -1.
func parseTerrain(s string) ([4]int, error) {
	out := [4]int{-1, -1, -1, -1}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return out, fmt.Errorf("terrain %q: want 4 corners, got %d", s, len(parts))
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return out, fmt.Errorf("terrain %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func convertWangSet(raw xmlWangSet) (tiled.WangSet, error) {
	set := tiled.WangSet{Name: raw.Name, Type: raw.Type, Tile: -1}
	if raw.Tile != nil {
		set.Tile = *raw.Tile
	}
	for _, c := range raw.Colors {
		set.Colors = append(set.Colors, tiled.WangColor{
			Name:        c.Name,
			Color:       c.Color,
			Tile:        c.Tile,
			Probability: c.Probability,
		})
	}
	for _, t := range raw.Tiles {
		id, err := parseWangID(t.WangID)
		if err != nil {
			return tiled.WangSet{}, fmt.Errorf("wangtile %d: %w", t.TileID, err)
		}
		set.Tiles = append(set.Tiles, tiled.WangTile{TileID: t.TileID, WangID: id})
	}
	return set, nil
}

func parseWangID(s string) ([8]uint8, error) {
	var out [8]uint8
	parts := strings.Split(s, ",")
	if len(parts) != len(out) {
		return out, fmt.Errorf("wangid %q: want %d values, got %d", s, len(out), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return out, fmt.Errorf("wangid %q: %w", s, err)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

func convertBase(raw *xmlLayer) tiled.LayerBase {
	b := tiled.LayerBase{
		ID:         raw.ID,
		Name:       raw.Name,
		Class:      raw.Class,
		OffsetX:    raw.OffsetX,
		OffsetY:    raw.OffsetY,
		ParallaxX:  1,
		ParallaxY:  1,
		Opacity:    1,
		TintColor:  raw.TintColor,
		Visible:    raw.Visible == nil || *raw.Visible != 0,
		Locked:     raw.Locked != 0,
		Properties: convertProperties(raw.Properties),
	}
	if raw.ParallaxX != nil {
		b.ParallaxX = *raw.ParallaxX
	}
	if raw.ParallaxY != nil {
		b.ParallaxY = *raw.ParallaxY
	}
	if raw.Opacity != nil {
		b.Opacity = *raw.Opacity
	}
	return b
}

// convertLayers converts layer elements in document order. Elements that
// are not layers are skipped. Tile layers of an infinite map are always
// chunked, even when they hold no chunks.
func (l *Loader) convertLayers(raw []xmlLayer, infinite bool) ([]tiled.Layer, error) {
	var layers []tiled.Layer
	for i := range raw {
		r := &raw[i]
		var (
			layer tiled.Layer
			err   error
		)
		switch r.XMLName.Local {
		case elemLayer:
			layer, err = l.convertTileLayer(r, infinite)
		case elemObjectGroup:
			layer, err = convertObjectGroup(r)
		case elemImageLayer:
			layer = &tiled.ImageLayer{
				LayerBase: convertBase(r),
				Image:     convertImage(r.Image),
				RepeatX:   r.RepeatX != 0,
				RepeatY:   r.RepeatY != 0,
			}
		case elemGroup:
			var children []tiled.Layer
			children, err = l.convertLayers(r.Layers, infinite)
			layer = &tiled.GroupLayer{LayerBase: convertBase(r), Layers: children}
		default:
			l.log.Debug("skipping element", zap.String("element", r.XMLName.Local))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", r.XMLName.Local, r.Name, err)
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

func (l *Loader) convertTileLayer(raw *xmlLayer, infinite bool) (*tiled.TileLayer, error) {
	layer := &tiled.TileLayer{
		LayerBase: convertBase(raw),
		Width:     raw.Width,
		Height:    raw.Height,
	}
	if raw.Data == nil {
		return nil, errMissingData
	}
	data := raw.Data
	layer.Encoding = tiled.Encoding(data.Encoding)
	layer.Compression = tiled.Compression(data.Compression)

	if infinite || len(data.Chunks) > 0 {
		chunks, err := l.decodeChunks(data)
		if err != nil {
			return nil, err
		}
		layer.Chunks = tiled.NewChunkSet(chunks)
		l.log.Debug("decoded chunked layer",
			zap.String("layer", raw.Name),
			zap.Int("chunks", len(chunks)))
		blank := 0
		for _, c := range chunks {
			blank += countBlank(c.Cells)
		}
		l.warnBlank(raw.Name, blank)
		return layer, nil
	}

	cells, err := l.decodeRegion(data.Encoding, data.Compression, data.Payload, data.Tiles, raw.Width*raw.Height)
	if err != nil {
		return nil, err
	}
	layer.Cells = cells
	l.warnBlank(raw.Name, countBlank(cells))
	return layer, nil
}

// decodeRegion decodes one layer or chunk payload. An absent encoding
// means one <tile gid="..."/> element per cell.
func (l *Loader) decodeRegion(enc, comp, payload string, tiles []xmlDataTile, expected int) ([]tiled.Cell, error) {
	if enc == "" {
		if len(tiles) != expected {
			return nil, &tiled.LayerSizeMismatchError{Expected: expected, Got: len(tiles)}
		}
		cells := make([]tiled.Cell, len(tiles))
		for i, t := range tiles {
			cells[i] = tiled.Decode(t.GID)
		}
		return cells, nil
	}
	return l.dec.Cells(tiled.Encoding(enc), tiled.Compression(comp), payload, expected)
}

func (l *Loader) decodeChunks(data *xmlData) ([]tiled.Chunk, error) {
	if data.Encoding != "" {
		in := make([]tiled.ChunkData, len(data.Chunks))
		for i, c := range data.Chunks {
			in[i] = tiled.ChunkData{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, Payload: c.Payload}
		}
		return l.dec.Chunks(tiled.Encoding(data.Encoding), tiled.Compression(data.Compression), in)
	}

	out := make([]tiled.Chunk, 0, len(data.Chunks))
	for _, c := range data.Chunks {
		if c.Width <= 0 || c.Height <= 0 {
			return nil, fmt.Errorf("chunk (%d,%d): %w: %dx%d", c.X, c.Y, tiled.ErrBadChunkSize, c.Width, c.Height)
		}
		cells, err := l.decodeRegion("", "", "", c.Tiles, c.Width*c.Height)
		if err != nil {
			return nil, fmt.Errorf("chunk (%d,%d): %w", c.X, c.Y, err)
		}
		out = append(out, tiled.Chunk{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, Cells: cells})
	}
	return out, nil
}

// countBlank counts cells that came from empty or unreadable CSV tokens.
func countBlank(cells []tiled.Cell) int {
	n := 0
	for _, c := range cells {
		if c.Index == tiled.BlankCell {
			n++
		}
	}
	return n
}

func (l *Loader) warnBlank(layer string, blank int) {
	if blank > 0 {
		l.log.Warn("layer has blank cells",
			zap.String("layer", layer),
			zap.Int("count", blank))
	}
}

func convertObjectGroup(raw *xmlLayer) (*tiled.ObjectGroup, error) {
	group := &tiled.ObjectGroup{
		LayerBase: convertBase(raw),
		Color:     raw.Color,
		DrawOrder: raw.DrawOrder,
	}
	if group.DrawOrder == "" {
		group.DrawOrder = "topdown"
	}
	for i := range raw.Objects {
		obj, err := convertObject(&raw.Objects[i])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", raw.Objects[i].ID, err)
		}
		group.Objects = append(group.Objects, obj)
	}
	return group, nil
}

func convertObject(raw *xmlObject) (tiled.Object, error) {
	obj := tiled.Object{
		ID:         raw.ID,
		Name:       raw.Name,
		Type:       raw.Type,
		X:          raw.X,
		Y:          raw.Y,
		Width:      raw.Width,
		Height:     raw.Height,
		Rotation:   raw.Rotation,
		GID:        tiled.Decode(raw.GID),
		Visible:    raw.Visible == nil || *raw.Visible != 0,
		Template:   raw.Template,
		Shape:      tiled.ShapeRect,
		Properties: convertProperties(raw.Properties),
	}
	if obj.Type == "" {
		obj.Type = raw.Class
	}

	var err error
	switch {
	case raw.Ellipse != nil:
		obj.Shape = tiled.ShapeEllipse
	case raw.Point != nil:
		obj.Shape = tiled.ShapePoint
	case raw.Polygon != nil:
		obj.Shape = tiled.ShapePolygon
		obj.Points, err = parsePoints(raw.Polygon.Points)
	case raw.Polyline != nil:
		obj.Shape = tiled.ShapePolyline
		obj.Points, err = parsePoints(raw.Polyline.Points)
	case raw.Text != nil:
		obj.Shape = tiled.ShapeText
		obj.Text = convertText(raw.Text)
	}
	if err != nil {
		return tiled.Object{}, err
	}
	return obj, nil
}

// parsePoints reads "x,y x,y ..." vertex lists.
func parsePoints(s string) ([]math.Vec2, error) {
	fields := strings.Fields(s)
	points := make([]math.Vec2, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errBadPoint, f)
		}
		x, err := strconv.ParseFloat(xs, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadPoint, f)
		}
		y, err := strconv.ParseFloat(ys, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errBadPoint, f)
		}
		points = append(points, math.Vec2{X: float32(x), Y: float32(y)})
	}
	return points, nil
}

func convertText(raw *xmlText) *tiled.Text {
	t := &tiled.Text{
		Content:    raw.Content,
		FontFamily: raw.FontFamily,
		PixelSize:  16,
		Wrap:       raw.Wrap != 0,
		Color:      raw.Color,
		Bold:       raw.Bold != 0,
		Italic:     raw.Italic != 0,
		HAlign:     raw.HAlign,
		VAlign:     raw.VAlign,
	}
	if raw.PixelSize != nil {
		t.PixelSize = *raw.PixelSize
	}
	if t.FontFamily == "" {
		t.FontFamily = "sans-serif"
	}
	if t.HAlign == "" {
		t.HAlign = "left"
	}
	if t.VAlign == "" {
		t.VAlign = "top"
	}
	return t
}
