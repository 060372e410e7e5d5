package math

import "testing"

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{10, 0}.Rotate(90)
	if abs(got.X) > 1e-4 || abs(got.Y-10) > 1e-4 {
		t.Errorf("Vec2.Rotate(90) = %v, want {0 10}", got)
	}
	if got := (Vec2{1, 2}).Rotate(0); got != (Vec2{1, 2}) {
		t.Errorf("Vec2.Rotate(0) = %v, want {1 2}", got)
	}
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]Vec2{{0, 0}, {32, -8}, {-4, 16}})
	if lo != (Vec2{-4, -8}) || hi != (Vec2{32, 16}) {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}

	lo, hi = Bounds(nil)
	if lo != (Vec2{}) || hi != (Vec2{}) {
		t.Errorf("Bounds(nil) = %v, %v, want zero", lo, hi)
	}
}

func TestPathLength(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := PathLength(square, false); got != 30 {
		t.Errorf("open PathLength = %v, want 30", got)
	}
	if got := PathLength(square, true); got != 40 {
		t.Errorf("closed PathLength = %v, want 40", got)
	}
	if got := PathLength(square[:1], true); got != 0 {
		t.Errorf("single point PathLength = %v, want 0", got)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
