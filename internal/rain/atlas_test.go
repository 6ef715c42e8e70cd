package rain

import (
	"image"
	"testing"
)

func TestAtlasImageCoversGrid(t *testing.T) {
	img := buildAtlasImage()
	want := image.Rect(0, 0, FontCols*FontCellW, FontRows*FontCellH)
	if img.Bounds() != want {
		t.Fatalf("atlas bounds %v, want %v", img.Bounds(), want)
	}

	// 'A' must actually rasterize: some pixel in its cell is opaque.
	i := 'A' - FontFirst
	cx := (int(i) % FontCols) * FontCellW
	cy := (int(i) / FontCols) * FontCellH
	opaque := false
	for y := cy; y < cy+FontCellH && !opaque; y++ {
		for x := cx; x < cx+FontCellW; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				opaque = true
				break
			}
		}
	}
	if !opaque {
		t.Fatal("glyph cell for 'A' is empty")
	}

	// The space cell stays fully transparent.
	blank := true
	for y := 0; y < FontCellH && blank; y++ {
		for x := 0; x < FontCellW; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				blank = false
				break
			}
		}
	}
	if !blank {
		t.Fatal("space cell has opaque pixels")
	}
}

func TestAtlasUVInsideTexture(t *testing.T) {
	for c := rune(FontFirst); c <= FontLast; c++ {
		u0, v0, u1, v1 := atlasUV(c)
		if u0 < 0 || v0 < 0 || u1 > 1 || v1 > 1 || u0 >= u1 || v0 >= v1 {
			t.Fatalf("glyph %q uv (%v,%v)-(%v,%v) malformed", c, u0, v0, u1, v1)
		}
	}
	// Out-of-range runes fall back rather than index off the sheet.
	fu0, fv0, fu1, fv1 := atlasUV('λ')
	qu0, qv0, qu1, qv1 := atlasUV('?')
	if fu0 != qu0 || fv0 != qv0 || fu1 != qu1 || fv1 != qv1 {
		t.Fatal("out-of-range rune did not fall back to '?'")
	}
}

func TestGlyphPoolRenderable(t *testing.T) {
	r := NewRand(8)
	for i := 0; i < 500; i++ {
		g := RandomGlyph(r)
		if g < FontFirst || g > FontLast {
			t.Fatalf("glyph %q outside the atlas range", g)
		}
	}
}
