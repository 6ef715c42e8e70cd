package rain

import "testing"

func placeSymbols(t *testing.T, arena *SymbolArena, cfg Config, positions [][2]float64) []int {
	t.Helper()
	r := NewRand(1)
	ids := make([]int, 0, len(positions))
	for _, pos := range positions {
		id := arena.Spawn(r, cfg, 0)
		if id < 0 {
			t.Fatal("arena full during setup")
		}
		s := arena.Slot(id)
		s.X, s.Y = pos[0], pos[1]
		ids = append(ids, id)
	}
	return ids
}

func TestIndexNearFindsOnlyNeighborhood(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	arena := NewSymbolArena(8)
	ids := placeSymbols(t, arena, cfg, [][2]float64{
		{100, 100}, // inside
		{140, 140}, // inside, corner of the box
		{100, 300}, // outside
		{700, 500}, // far away
	})

	var ix SymbolIndex
	ix.Build(arena, cfg)
	got := ix.Near(100, 100, 50)

	want := map[int]bool{ids[0]: true, ids[1]: true}
	if len(got) != len(want) {
		t.Fatalf("query returned %d ids %v, want %d", len(got), got, len(want))
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id %d in neighborhood", id)
		}
	}
}

func TestIndexSkipsDeadSymbols(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	arena := NewSymbolArena(4)
	ids := placeSymbols(t, arena, cfg, [][2]float64{{50, 50}, {60, 60}})
	arena.Release(ids[0])

	var ix SymbolIndex
	ix.Build(arena, cfg)
	got := ix.Near(50, 50, 100)

	if len(got) != 1 || got[0] != ids[1] {
		t.Fatalf("query over dead symbol returned %v, want [%d]", got, ids[1])
	}
}

func TestIndexHandlesSubdivision(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	arena := NewSymbolArena(200)
	r := NewRand(77)
	for i := 0; i < 200; i++ {
		id := arena.Spawn(r, cfg, 0)
		s := arena.Slot(id)
		s.X = r.RangeF(0, cfg.ScreenW)
		s.Y = r.RangeF(0, cfg.ScreenH)
	}

	var ix SymbolIndex
	ix.Build(arena, cfg)

	// A full-screen query must return every live symbol exactly once.
	got := ix.Near(cfg.ScreenW/2, cfg.ScreenH/2, cfg.ScreenW)
	seen := map[int]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("id %d returned twice", id)
		}
		seen[id] = true
	}
	if len(got) != 200 {
		t.Fatalf("full-screen query returned %d of 200 symbols", len(got))
	}
}

func TestNearWithoutBuildIsEmpty(t *testing.T) {
	var ix SymbolIndex
	if got := ix.Near(0, 0, 100); len(got) != 0 {
		t.Fatalf("unbuilt index returned %v", got)
	}
}

func TestRectFContainsHalfOpen(t *testing.T) {
	r := RectF{X0: 0, Y0: 0, X1: 10, Y1: 10}
	if !r.ContainsPoint(0, 0) {
		t.Error("lower bound should be inclusive")
	}
	if r.ContainsPoint(10, 10) {
		t.Error("upper bound should be exclusive")
	}
}
