package tiled

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 12, IndexMask, FlipHorizontal, FlipVertical | 7, FlipDiagonal | 300, 0xFFFFFFFF}
	r := rand.New(rand.NewPCG(1, 2))
	for range 10000 {
		values = append(values, r.Uint32())
	}
	for _, raw := range values {
		if got := Decode(raw).Encode(); got != raw {
			t.Fatalf("Decode(%#x).Encode() = %#x", raw, got)
		}
	}
}

func TestDecodeAllFlags(t *testing.T) {
	want := Cell{Index: 0x1FFFFFFF, FlipH: true, FlipV: true, FlipD: true}
	if diff := cmp.Diff(want, Decode(0xFFFFFFFF)); diff != "" {
		t.Errorf("Decode(0xFFFFFFFF) mismatch (-want+got):\n%v", diff)
	}
}

func TestDecodeSingleFlags(t *testing.T) {
	tests := []struct {
		raw  uint32
		want Cell
	}{
		{0, Cell{}},
		{5, Cell{Index: 5}},
		{0x80000005, Cell{Index: 5, FlipH: true}},
		{0x40000005, Cell{Index: 5, FlipV: true}},
		{0x20000005, Cell{Index: 5, FlipD: true}},
		{0xA0000001, Cell{Index: 1, FlipH: true, FlipD: true}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Decode(tt.raw)); diff != "" {
			t.Errorf("Decode(%#x) mismatch (-want+got):\n%v", tt.raw, diff)
		}
	}
}

func TestCellEmpty(t *testing.T) {
	if !(Cell{}).Empty() {
		t.Error("zero cell should be empty")
	}
	if !Decode(BlankCell).Empty() {
		t.Error("blank sentinel should be empty")
	}
	if (Cell{Index: 1, FlipH: true}).Empty() {
		t.Error("cell 1 should not be empty")
	}
}

func TestCellString(t *testing.T) {
	tests := map[Cell]string{
		{Index: 12}:                           "12",
		{Index: 12, FlipH: true, FlipD: true}: "12+HD",
		{Index: 3, FlipV: true}:               "3+V",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("%#v.String() = %q, want %q", c, got, want)
		}
	}
}
