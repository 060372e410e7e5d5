package main

import (
	"fmt"

	"github.com/Faultbox/midgard-tiled/pkg/tiled"
)

// mapSummary is the printable overview of one map.
type mapSummary struct {
	Path        string            `yaml:"path"`
	Orientation string            `yaml:"orientation"`
	Size        string            `yaml:"size"`
	TileSize    string            `yaml:"tile_size"`
	Infinite    bool              `yaml:"infinite,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
	Tilesets    []tilesetSummary  `yaml:"tilesets"`
	Layers      []layerSummary    `yaml:"layers"`
}

type tilesetSummary struct {
	FirstGID  uint32 `yaml:"first_gid"`
	Name      string `yaml:"name"`
	Source    string `yaml:"source,omitempty"`
	TileCount int    `yaml:"tile_count"`
	Columns   int    `yaml:"columns"`
	Loaded    bool   `yaml:"loaded"`
}

type layerSummary struct {
	ID         int               `yaml:"id"`
	Name       string            `yaml:"name"`
	Kind       string            `yaml:"kind"`
	Visible    bool              `yaml:"visible"`
	Tiles      int               `yaml:"tiles,omitempty"`
	Chunks     int               `yaml:"chunks,omitempty"`
	Bounds     string            `yaml:"bounds,omitempty"`
	Objects    int               `yaml:"objects,omitempty"`
	Image      string            `yaml:"image,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Layers     []layerSummary    `yaml:"layers,omitempty"`
}

func summarize(path string, m *tiled.Map, withProps bool) mapSummary {
	s := mapSummary{
		Path:        path,
		Orientation: m.Orientation,
		Size:        fmt.Sprintf("%dx%d", m.Width, m.Height),
		TileSize:    fmt.Sprintf("%dx%d", m.TileWidth, m.TileHeight),
		Infinite:    m.Infinite,
	}
	if withProps {
		s.Properties = propertyMap(m.Properties)
	}
	for _, ref := range m.Registry().Tilesets() {
		ts := tilesetSummary{
			FirstGID: ref.FirstGID,
			Name:     ref.Name(),
			Source:   ref.Source,
			Loaded:   ref.Tileset != nil,
		}
		if ref.Tileset != nil {
			ts.TileCount = ref.Tileset.TileCount
			ts.Columns = ref.Tileset.AtlasColumns()
		}
		s.Tilesets = append(s.Tilesets, ts)
	}
	s.Layers = summarizeLayers(m.Layers, withProps)
	return s
}

func summarizeLayers(layers []tiled.Layer, withProps bool) []layerSummary {
	var out []layerSummary
	for _, l := range layers {
		base := l.Base()
		ls := layerSummary{
			ID:      base.ID,
			Name:    base.Name,
			Kind:    l.Kind().String(),
			Visible: base.Visible,
		}
		if withProps {
			ls.Properties = propertyMap(base.Properties)
		}
		switch v := l.(type) {
		case *tiled.TileLayer:
			ls.Tiles = v.CountTiles()
			if v.Infinite() {
				ls.Chunks = v.Chunks.Len()
				minX, minY, maxX, maxY := v.Chunks.Bounds()
				ls.Bounds = fmt.Sprintf("(%d,%d)-(%d,%d)", minX, minY, maxX, maxY)
			}
		case *tiled.ObjectGroup:
			ls.Objects = len(v.Objects)
		case *tiled.ImageLayer:
			if v.Image != nil {
				ls.Image = v.Image.Source
			}
		case *tiled.GroupLayer:
			ls.Layers = summarizeLayers(v.Layers, withProps)
		}
		out = append(out, ls)
	}
	return out
}

func propertyMap(props tiled.Properties) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for _, p := range props {
		out[p.Name] = p.Value
	}
	return out
}

// cellReport describes one cell and where its tile comes from.
type cellReport struct {
	X, Y    int
	Cell    tiled.Cell
	Tileset string
	LocalID uint32
	Rect    tiled.Rect
	Frames  int
	Err     error
}

func describeCell(m *tiled.Map, x, y int, cell tiled.Cell) cellReport {
	r := cellReport{X: x, Y: y, Cell: cell}
	if cell.Empty() {
		return r
	}
	ref, local, rect, err := m.TileSource(cell.Index)
	if err != nil {
		r.Err = err
		return r
	}
	r.Tileset = ref.Name()
	r.LocalID = local
	r.Rect = rect
	if t := ref.Tileset.Tile(local); t != nil {
		r.Frames = len(t.Animation)
	}
	return r
}

func (r cellReport) String() string {
	pos := fmt.Sprintf("(%d,%d)", r.X, r.Y)
	switch {
	case r.Cell.Empty():
		return pos + " empty"
	case r.Err != nil:
		return fmt.Sprintf("%s gid %s: %v", pos, r.Cell, r.Err)
	}
	s := fmt.Sprintf("%s gid %s -> %s #%d rect %s", pos, r.Cell, r.Tileset, r.LocalID, r.Rect)
	if r.Frames > 0 {
		s += fmt.Sprintf(" (%d frames)", r.Frames)
	}
	return s
}
