package tiled

import "sync"

// Map is a decoded map document.
type Map struct {
	Version         string
	TiledVersion    string
	Class           string
	Orientation     string
	RenderOrder     string
	Width           int
	Height          int
	TileWidth       int
	TileHeight      int
	Infinite        bool
	BackgroundColor string
	ParallaxOriginX float32
	ParallaxOriginY float32
	Tilesets        []TilesetRef
	Layers          []Layer
	Properties      Properties

	registryOnce sync.Once
	registry     *Registry
}

// Registry returns the gid registry for the map's tilesets. It is built
// on first use.
func (m *Map) Registry() *Registry {
	m.registryOnce.Do(func() {
		m.registry = NewRegistry(m.Tilesets)
	})
	return m.registry
}

// TileSource resolves a global id to its tileset, local id and atlas rectangle.
func (m *Map) TileSource(gid uint32) (TilesetRef, uint32, Rect, error) {
	ref, local, err := m.Registry().Resolve(gid)
	if err != nil {
		return TilesetRef{}, 0, Rect{}, err
	}
	rect, err := SourceRect(ref.Tileset, local)
	if err != nil {
		return TilesetRef{}, 0, Rect{}, err
	}
	return ref, local, rect, nil
}

// LayerByName returns the first layer with the given name, searching groups.
func (m *Map) LayerByName(name string) Layer {
	var found Layer
	WalkLayers(m.Layers, func(l Layer) bool {
		if l.Base().Name == name {
			found = l
			return false
		}
		return true
	})
	return found
}

// TileLayers returns every tile layer, including those inside groups.
func (m *Map) TileLayers() []*TileLayer {
	var out []*TileLayer
	WalkLayers(m.Layers, func(l Layer) bool {
		if tl, ok := l.(*TileLayer); ok {
			out = append(out, tl)
		}
		return true
	})
	return out
}

// PixelSize returns the map size in pixels for finite maps.
func (m *Map) PixelSize() (int, int) {
	return m.Width * m.TileWidth, m.Height * m.TileHeight
}
