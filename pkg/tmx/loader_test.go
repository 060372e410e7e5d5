package tmx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-tiled/pkg/tiled"
)

const externalTileset = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.5" tiledversion="1.5.0" name="GrassAndWater" tilewidth="64" tileheight="64" tilecount="24" columns="4">
 <grid orientation="isometric" width="64" height="32"/>
 <image source="grass_and_water.png" width="256" height="384"/>
 <wangsets>
  <wangset name="Grass and Water" type="corner" tile="6">
   <wangcolor name="grass" color="#72ff62" tile="0" probability="1"/>
   <wangcolor name="water" color="#52c9ff" tile="23" probability="1"/>
   <wangtile tileid="0" wangid="0,1,0,1,0,1,0,1"/>
   <wangtile tileid="4" wangid="0,1,0,2,0,1,0,1"/>
  </wangset>
 </wangsets>
</tileset>`

const externalMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.5" orientation="isometric" width="2" height="1" tilewidth="64" tileheight="32">
 <tileset firstgid="1" source="tiles/grass.tsx"/>
 <tileset firstgid="25" source="tiles/missing.tsx"/>
 <layer id="1" name="ground" width="2" height="1">
  <data encoding="csv">5,26</data>
 </layer>
</map>`

// writeFiles creates files under a temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoadTileset_External(t *testing.T) {
	dir := writeFiles(t, map[string]string{"grass.tsx": externalTileset})

	ts, err := LoadTileset(filepath.Join(dir, "grass.tsx"), Options{})
	require.NoError(t, err)
	require.Equal(t, "GrassAndWater", ts.Name)
	require.Equal(t, 24, ts.TileCount)
	require.Equal(t, 4, ts.Columns)
	require.Equal(t, filepath.Join(dir, "grass.tsx"), ts.Source)
	require.Equal(t, &tiled.Grid{Orientation: "isometric", Width: 64, Height: 32}, ts.Grid)

	require.Len(t, ts.WangSets, 1)
	ws := ts.WangSets[0]
	require.Equal(t, "corner", ws.Type)
	require.Equal(t, 6, ws.Tile)
	require.Len(t, ws.Colors, 2)
	require.Equal(t, "water", ws.Colors[1].Name)
	id, ok := ws.TileColors(4)
	require.True(t, ok)
	require.Equal(t, [8]uint8{0, 1, 0, 2, 0, 1, 0, 1}, id)

	rect, err := tiled.SourceRect(ts, 5)
	require.NoError(t, err)
	require.Equal(t, tiled.Rect{X: 64, Y: 64, Width: 64, Height: 64}, rect)
}

func TestLoadTileset_TileCollision(t *testing.T) {
	const doc = `<tileset name="walls" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="walls.png" width="32" height="32"/>
 <tile id="0">
  <objectgroup draworder="index" id="2">
   <object id="1" x="0" y="8" width="16" height="8"/>
   <object id="2" x="2" y="2">
    <polygon points="0,0 4,0 4,4"/>
   </object>
  </objectgroup>
 </tile>
 <tile id="1" type="floor"/>
</tileset>`
	dir := writeFiles(t, map[string]string{"walls.tsx": doc})

	ts, err := LoadTileset(filepath.Join(dir, "walls.tsx"), Options{})
	require.NoError(t, err)

	wall := ts.Tile(0)
	require.NotNil(t, wall)
	require.NotNil(t, wall.ObjectGroup)
	require.Equal(t, "index", wall.ObjectGroup.DrawOrder)
	require.Len(t, wall.ObjectGroup.Objects, 2)

	box := wall.ObjectGroup.Objects[0]
	require.Equal(t, tiled.ShapeRect, box.Shape)
	require.Equal(t, float32(8), box.Y)
	require.Equal(t, float32(16), box.Width)
	require.Equal(t, float32(8), box.Height)

	require.Equal(t, tiled.ShapePolygon, wall.ObjectGroup.Objects[1].Shape)
	require.Len(t, wall.ObjectGroup.Objects[1].Points, 3)

	require.Nil(t, ts.Tile(1).ObjectGroup)
}

func TestLoadTileset_NotATileset(t *testing.T) {
	dir := writeFiles(t, map[string]string{"map.tsx": `<map width="1" height="1"/>`})

	_, err := LoadTileset(filepath.Join(dir, "map.tsx"), Options{})
	require.ErrorIs(t, err, ErrNotTileset)
}

func TestLoad_MissingTilesetFails(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"level.tmx":       externalMap,
		"tiles/grass.tsx": externalTileset,
	})

	_, err := Load(filepath.Join(dir, "level.tmx"), Options{})
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist), "%v", err)
}

func TestLoad_SkipMissingTilesets(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"level.tmx":       externalMap,
		"tiles/grass.tsx": externalTileset,
	})

	core, logs := observer.New(zap.WarnLevel)
	m, err := Load(filepath.Join(dir, "level.tmx"), Options{
		Logger:              zap.New(core),
		SkipMissingTilesets: true,
	})
	require.NoError(t, err)
	require.Len(t, m.Tilesets, 2)
	require.NotNil(t, m.Tilesets[0].Tileset)
	require.Nil(t, m.Tilesets[1].Tileset)
	require.Equal(t, 1, logs.FilterMessage("external tileset not loaded").Len())

	ground := m.Layers[0].(*tiled.TileLayer)

	ref, local, err := m.Registry().ResolveCell(ground.Cells[0])
	require.NoError(t, err)
	require.Equal(t, "GrassAndWater", ref.Name())
	require.Equal(t, uint32(4), local)

	_, _, err = m.Registry().ResolveCell(ground.Cells[1])
	var unresolved *tiled.UnresolvedTileError
	require.True(t, errors.As(err, &unresolved), "%v", err)
}

func TestLoader_CachesTilesets(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.tmx":           `<map width="1" height="1" tilewidth="64" tileheight="32"><tileset firstgid="1" source="tiles/grass.tsx"/></map>`,
		"b.tmx":           `<map width="1" height="1" tilewidth="64" tileheight="32"><tileset firstgid="1" source="./tiles/../tiles/grass.tsx"/></map>`,
		"tiles/grass.tsx": externalTileset,
	})

	core, logs := observer.New(zap.DebugLevel)
	l := NewLoader(Options{Logger: zap.New(core)})

	a, err := l.Load(filepath.Join(dir, "a.tmx"))
	require.NoError(t, err)
	b, err := l.Load(filepath.Join(dir, "b.tmx"))
	require.NoError(t, err)

	require.Same(t, a.Tilesets[0].Tileset, b.Tilesets[0].Tileset)
	require.Equal(t, 1, logs.FilterMessage("tileset cache hit").Len())
}

func TestLoad_BOM(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bom.tmx": "\xef\xbb\xbf" + `<map width="4" height="4" tilewidth="8" tileheight="8"/>`,
	})

	m, err := Load(filepath.Join(dir, "bom.tmx"), Options{})
	require.NoError(t, err)
	require.Equal(t, 4, m.Width)
}

func TestLoadFiles(t *testing.T) {
	files := map[string]string{"tiles/grass.tsx": externalTileset}
	var paths []string
	for i := range 8 {
		name := fmt.Sprintf("map%d.tmx", i)
		files[name] = fmt.Sprintf(`<map width="%d" height="1" tilewidth="64" tileheight="32">
 <tileset firstgid="1" source="tiles/grass.tsx"/>
</map>`, i+1)
		paths = append(paths, name)
	}
	dir := writeFiles(t, files)
	for i := range paths {
		paths[i] = filepath.Join(dir, paths[i])
	}

	maps, err := LoadFiles(context.Background(), paths, Options{Workers: 3})
	require.NoError(t, err)
	require.Len(t, maps, len(paths))
	for i, m := range maps {
		require.Equal(t, i+1, m.Width, "maps keep input order")
		require.Same(t, maps[0].Tilesets[0].Tileset, m.Tilesets[0].Tileset)
	}
}

func TestLoadFiles_Error(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.tmx": `<map width="1" height="1" tilewidth="8" tileheight="8"/>`,
	})
	paths := []string{filepath.Join(dir, "ok.tmx"), filepath.Join(dir, "nope.tmx")}

	_, err := LoadFiles(context.Background(), paths, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading map file")
}

func TestLoadFiles_Cancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.tmx": `<map width="1" height="1" tilewidth="8" tileheight="8"/>`,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadFiles(ctx, []string{filepath.Join(dir, "ok.tmx")}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecode_BlankCellsWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	doc := `<map width="4" height="1" tilewidth="8" tileheight="8">
 <layer name="holes" width="4" height="1"><data encoding="csv">1,,x,0</data></layer>
</map>`

	m, err := Decode(strings.NewReader(doc), ".", Options{Logger: zap.New(core)})
	require.NoError(t, err)
	require.Equal(t, 1, m.Layers[0].(*tiled.TileLayer).CountTiles())

	entries := logs.FilterMessage("layer has blank cells").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(2), entries[0].ContextMap()["count"])
}
