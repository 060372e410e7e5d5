package tiled

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
)

// ChunkData is an undecoded chunk of an infinite map layer. Encoding and
// compression come from the parent layer.
type ChunkData struct {
	X, Y          int
	Width, Height int
	Payload       string
}

// Chunk is a decoded rectangular piece of an infinite map layer.
// Origins may be negative; chunks never overlap.
type Chunk struct {
	X, Y          int
	Width, Height int
	Cells         []Cell // row-major, Width*Height entries
}

// Contains reports whether the world tile (x, y) falls inside the chunk.
func (c *Chunk) Contains(x, y int) bool {
	return x >= c.X && x < c.X+c.Width && y >= c.Y && y < c.Y+c.Height
}

// CellAt returns the cell at chunk-local coordinates.
func (c *Chunk) CellAt(lx, ly int) Cell {
	if lx < 0 || ly < 0 || lx >= c.Width || ly >= c.Height {
		return Cell{}
	}
	return c.Cells[ly*c.Width+lx]
}

// DecodeChunks decodes chunks with the default decoder.
func DecodeChunks(enc Encoding, comp Compression, chunks []ChunkData) ([]Chunk, error) {
	return Decoder{}.Chunks(enc, comp, chunks)
}

// Chunks decodes every chunk independently. The first failing chunk aborts
// the whole layer.
func (d Decoder) Chunks(enc Encoding, comp Compression, chunks []ChunkData) ([]Chunk, error) {
	out := make([]Chunk, 0, len(chunks))
	for _, cd := range chunks {
		if cd.Width <= 0 || cd.Height <= 0 {
			return nil, fmt.Errorf("chunk (%d,%d): %w: %dx%d", cd.X, cd.Y, ErrBadChunkSize, cd.Width, cd.Height)
		}
		cells, err := d.Cells(enc, comp, cd.Payload, cd.Width*cd.Height)
		if err != nil {
			return nil, fmt.Errorf("chunk (%d,%d): %w", cd.X, cd.Y, err)
		}
		out = append(out, Chunk{
			X:      cd.X,
			Y:      cd.Y,
			Width:  cd.Width,
			Height: cd.Height,
			Cells:  cells,
		})
	}
	return out, nil
}

// ChunkSet indexes the chunks of one layer for world-coordinate lookups.
type ChunkSet struct {
	chunks []Chunk
	rtree  *rtreego.Rtree
}

// indexedChunk wraps a chunk position for R-tree storage.
type indexedChunk struct {
	index int
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (c *indexedChunk) Bounds() rtreego.Rect {
	return c.rect
}

// NewChunkSet builds a lookup index over chunks.
func NewChunkSet(chunks []Chunk) *ChunkSet {
	s := &ChunkSet{
		chunks: chunks,
		rtree:  rtreego.NewTree(2, 25, 50),
	}
	for i := range chunks {
		c := &chunks[i]
		// R-tree rectangles need non-zero extent
		if c.Width <= 0 || c.Height <= 0 {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{float64(c.X), float64(c.Y)},
			[]float64{float64(c.Width), float64(c.Height)},
		)
		if err != nil {
			continue
		}
		s.rtree.Insert(&indexedChunk{index: i, rect: rect})
	}
	return s
}

// Chunks returns the chunks in document order.
func (s *ChunkSet) Chunks() []Chunk {
	return s.chunks
}

// Len returns the number of chunks.
func (s *ChunkSet) Len() int {
	return len(s.chunks)
}

// Locate finds the chunk containing world tile (x, y) and the local
// coordinates inside it. ok is false in gaps between chunks.
func (s *ChunkSet) Locate(x, y int) (chunk *Chunk, lx, ly int, ok bool) {
	// Query a small box centered in the tile so neighbouring chunks that
	// merely touch the tile edge do not match.
	query := rtreego.Point{float64(x) + 0.5, float64(y) + 0.5}.ToRect(0.25)
	for _, sp := range s.rtree.SearchIntersect(query) {
		c := &s.chunks[sp.(*indexedChunk).index]
		if c.Contains(x, y) {
			return c, x - c.X, y - c.Y, true
		}
	}
	return nil, 0, 0, false
}

// CellAt returns the cell at world tile (x, y). Gaps report an empty cell
// and false.
func (s *ChunkSet) CellAt(x, y int) (Cell, bool) {
	c, lx, ly, ok := s.Locate(x, y)
	if !ok {
		return Cell{}, false
	}
	return c.CellAt(lx, ly), true
}

// Bounds returns the tile rectangle covering every chunk as
// [minX, maxX) x [minY, maxY). An empty set reports all zeros.
func (s *ChunkSet) Bounds() (minX, minY, maxX, maxY int) {
	for i, c := range s.chunks {
		if i == 0 {
			minX, minY = c.X, c.Y
			maxX, maxY = c.X+c.Width, c.Y+c.Height
			continue
		}
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X+c.Width)
		maxY = max(maxY, c.Y+c.Height)
	}
	return minX, minY, maxX, maxY
}
