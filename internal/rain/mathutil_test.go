package rain

import (
	"math"
	"testing"
)

func TestRandDeterministic(t *testing.T) {
	a := NewRand(12345)
	b := NewRand(12345)
	for i := 0; i < 100; i++ {
		if a.NextU64() != b.NextU64() {
			t.Fatalf("same seed diverged at step %d", i)
		}
	}
}

func TestRandRanges(t *testing.T) {
	r := NewRand(9)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(7); v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d", v)
		}
		if v := r.Range(3, 9); v < 3 || v > 9 {
			t.Fatalf("Range(3,9) = %d", v)
		}
		if v := r.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v", v)
		}
		if v := r.RangeF(1.5, 2.5); v < 1.5 || v >= 2.5 {
			t.Fatalf("RangeF(1.5,2.5) = %v", v)
		}
	}
	if r.Intn(0) != 0 || r.Range(5, 2) != 5 || r.RangeF(4, 1) != 4 {
		t.Fatal("degenerate ranges not pinned to their lower bound")
	}
}

func TestChanceExtremes(t *testing.T) {
	r := NewRand(4)
	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) fired")
		}
		if !r.Chance(1.1) {
			t.Fatal("Chance(>1) missed")
		}
	}
}

func TestNormalize2(t *testing.T) {
	nx, ny, ok := normalize2(3, 4)
	if !ok {
		t.Fatal("normal-length vector rejected")
	}
	if math.Abs(nx-0.6) > 1e-12 || math.Abs(ny-0.8) > 1e-12 {
		t.Fatalf("normalize2(3,4) = (%v,%v)", nx, ny)
	}
	if _, _, ok := normalize2(0, 0); ok {
		t.Fatal("zero vector accepted")
	}
	if _, _, ok := normalize2(1e-4, 1e-4); ok {
		t.Fatal("sub-threshold vector accepted")
	}
}

func TestClampF(t *testing.T) {
	if clampF(5, 0, 3) != 3 || clampF(-1, 0, 3) != 0 || clampF(2, 0, 3) != 2 {
		t.Fatal("clampF broken")
	}
}
