// Package tmx loads Tiled map (.tmx) and tileset (.tsx) documents into the
// pkg/tiled model.
package tmx

import (
	"bytes"
	"cmp"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-tiled/pkg/encoding"
	"github.com/Faultbox/midgard-tiled/pkg/tiled"
)

// Loader errors.
var (
	ErrNotMap       = errors.New("document root is not <map>")
	ErrNotTileset   = errors.New("document root is not <tileset>")
	errMissingData  = errors.New("tile layer has no <data> element")
	errBadPoint     = errors.New("malformed point")
	errMissingFirst = errors.New("tileset has no firstgid")
)

// Options configures a Loader.
type Options struct {
	// Logger receives debug and warning output. Nil disables logging.
	Logger *zap.Logger

	// AllowZstd enables zstd-compressed layer data.
	AllowZstd bool

	// Workers bounds LoadFiles concurrency. 0 means runtime.NumCPU().
	Workers int

	// SkipMissingTilesets keeps loading when an external tileset cannot be
	// read. The ref is left with a nil Tileset.
	SkipMissingTilesets bool
}

// Loader reads map documents and caches external tilesets by path.
// It is safe for concurrent use.
type Loader struct {
	opts Options
	log  *zap.Logger
	dec  tiled.Decoder

	mu       sync.Mutex
	tilesets map[string]*tiled.Tileset
}

// NewLoader creates a loader with the given options.
func NewLoader(opts Options) *Loader {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		opts:     opts,
		log:      log,
		dec:      tiled.Decoder{AllowZstd: opts.AllowZstd},
		tilesets: make(map[string]*tiled.Tileset),
	}
}

// Load reads a map file with a fresh loader.
func Load(path string, opts Options) (*tiled.Map, error) {
	return NewLoader(opts).Load(path)
}

// Decode reads a map document with a fresh loader. External tilesets
// resolve relative to baseDir.
func Decode(r io.Reader, baseDir string, opts Options) (*tiled.Map, error) {
	return NewLoader(opts).Decode(r, baseDir)
}

// LoadTileset reads a tileset file with a fresh loader.
func LoadTileset(path string, opts Options) (*tiled.Tileset, error) {
	return NewLoader(opts).LoadTileset(path)
}

// LoadFiles reads several map files concurrently with a shared loader.
func LoadFiles(ctx context.Context, paths []string, opts Options) ([]*tiled.Map, error) {
	return NewLoader(opts).LoadFiles(ctx, paths)
}

// Load reads a map file.
func (l *Loader) Load(path string) (*tiled.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	m, err := l.Decode(bytes.NewReader(encoding.TrimBOM(data)), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads a map document from r.
func (l *Loader) Decode(r io.Reader, baseDir string) (*tiled.Map, error) {
	var raw xmlMap
	if err := newXMLDecoder(r).Decode(&raw); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) {
			return nil, fmt.Errorf("%w: %v", ErrNotMap, err)
		}
		return nil, fmt.Errorf("parsing map: %w", err)
	}

	m := &tiled.Map{
		Version:         raw.Version,
		TiledVersion:    raw.TiledVersion,
		Class:           raw.Class,
		Orientation:     raw.Orientation,
		RenderOrder:     raw.RenderOrder,
		Width:           raw.Width,
		Height:          raw.Height,
		TileWidth:       raw.TileWidth,
		TileHeight:      raw.TileHeight,
		Infinite:        raw.Infinite != 0,
		BackgroundColor: raw.BackgroundColor,
		ParallaxOriginX: raw.ParallaxOriginX,
		ParallaxOriginY: raw.ParallaxOriginY,
		Properties:      convertProperties(raw.Properties),
	}
	if m.TiledVersion == "" {
		m.TiledVersion = m.Version
	}

	for i := range raw.Tilesets {
		ref, err := l.tilesetRef(&raw.Tilesets[i], baseDir)
		if err != nil {
			return nil, err
		}
		m.Tilesets = append(m.Tilesets, ref)
	}

	layers, err := l.convertLayers(raw.Layers, m.Infinite)
	if err != nil {
		return nil, err
	}
	m.Layers = layers

	l.log.Debug("map loaded",
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("tilesets", len(m.Tilesets)),
		zap.Int("layers", len(m.Layers)))
	return m, nil
}

// LoadTileset reads a tileset file, returning a cached copy when the same
// path was loaded before.
func (l *Loader) LoadTileset(path string) (*tiled.Tileset, error) {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	l.mu.Lock()
	ts, ok := l.tilesets[key]
	l.mu.Unlock()
	if ok {
		l.log.Debug("tileset cache hit", zap.String("path", key))
		return ts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset file: %w", err)
	}

	var raw xmlTileset
	if err := newXMLDecoder(bytes.NewReader(encoding.TrimBOM(data))).Decode(&raw); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) {
			return nil, fmt.Errorf("%s: %w: %v", path, ErrNotTileset, err)
		}
		return nil, fmt.Errorf("parsing tileset %s: %w", path, err)
	}
	ts, err = l.convertTileset(&raw, path)
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", path, err)
	}

	// A concurrent load of the same path may have won; keep the first.
	l.mu.Lock()
	if cached, ok := l.tilesets[key]; ok {
		ts = cached
	} else {
		l.tilesets[key] = ts
	}
	l.mu.Unlock()
	return ts, nil
}

// tilesetRef builds a map tileset reference, loading external sources
// relative to baseDir.
func (l *Loader) tilesetRef(raw *xmlTileset, baseDir string) (tiled.TilesetRef, error) {
	if raw.FirstGID == 0 {
		return tiled.TilesetRef{}, fmt.Errorf("tileset %q: %w", cmp.Or(raw.Source, raw.Name), errMissingFirst)
	}
	ref := tiled.TilesetRef{FirstGID: raw.FirstGID, Source: raw.Source}

	if raw.Source == "" {
		ts, err := l.convertTileset(raw, "")
		if err != nil {
			return tiled.TilesetRef{}, fmt.Errorf("tileset %q: %w", raw.Name, err)
		}
		ref.Tileset = ts
		return ref, nil
	}

	path := raw.Source
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	ts, err := l.LoadTileset(path)
	if err != nil {
		if !l.opts.SkipMissingTilesets {
			return tiled.TilesetRef{}, err
		}
		l.log.Warn("external tileset not loaded",
			zap.String("source", raw.Source),
			zap.Uint32("firstgid", raw.FirstGID),
			zap.Error(err))
		return ref, nil
	}
	ref.Tileset = ts
	return ref, nil
}

// LoadFiles reads maps concurrently. Results keep the order of paths. The
// first failure cancels the remaining loads.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]*tiled.Map, error) {
	workers := l.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	maps := make([]*tiled.Map, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := l.Load(path)
			if err != nil {
				return err
			}
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return maps, nil
}

func newXMLDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = encoding.CharsetReader
	return d
}
