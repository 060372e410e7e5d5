package tiled

import "fmt"

// Flag bits packed into the high end of a raw cell value.
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000

	// IndexMask clears the three flag bits.
	IndexMask uint32 = ^(FlipHorizontal | FlipVertical | FlipDiagonal)
)

// BlankCell is the raw value produced for empty or unparsable CSV tokens.
// It is nonzero but carries the largest possible id, which no tileset owns.
const BlankCell uint32 = IndexMask

// Cell is a decoded tile-layer cell: a global tile id plus orientation flags.
// Index 0 means no tile.
type Cell struct {
	Index uint32
	FlipH bool
	FlipV bool
	FlipD bool
}

// Decode splits a raw cell value into its id and flip flags.
func Decode(raw uint32) Cell {
	return Cell{
		Index: raw & IndexMask,
		FlipH: raw&FlipHorizontal != 0,
		FlipV: raw&FlipVertical != 0,
		FlipD: raw&FlipDiagonal != 0,
	}
}

// DecodeAll decodes a slice of raw values.
func DecodeAll(raw []uint32) []Cell {
	cells := make([]Cell, len(raw))
	for i, v := range raw {
		cells[i] = Decode(v)
	}
	return cells
}

// Encode packs the cell back into its raw form.
func (c Cell) Encode() uint32 {
	raw := c.Index & IndexMask
	if c.FlipH {
		raw |= FlipHorizontal
	}
	if c.FlipV {
		raw |= FlipVertical
	}
	if c.FlipD {
		raw |= FlipDiagonal
	}
	return raw
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Index == 0 || c.Index == BlankCell
}

// Flipped reports whether any orientation flag is set.
func (c Cell) Flipped() bool {
	return c.FlipH || c.FlipV || c.FlipD
}

// String returns the id followed by the set flags, e.g. "12+HD".
func (c Cell) String() string {
	if !c.Flipped() {
		return fmt.Sprintf("%d", c.Index)
	}
	flags := ""
	if c.FlipH {
		flags += "H"
	}
	if c.FlipV {
		flags += "V"
	}
	if c.FlipD {
		flags += "D"
	}
	return fmt.Sprintf("%d+%s", c.Index, flags)
}
