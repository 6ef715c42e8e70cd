package rain

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// buildAtlasImage rasterizes the printable ASCII range into a fixed grid,
// one cell per glyph, white on transparent. The fragment shader keys off
// the alpha channel only.
func buildAtlasImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, FontAtlasW, FontAtlasH))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for c := FontFirst; c <= FontLast; c++ {
		i := c - FontFirst
		col := i % FontCols
		row := i / FontCols
		d.Dot = fixed.P(col*FontCellW, row*FontCellH+basicfont.Face7x13.Ascent)
		d.DrawString(string(rune(c)))
	}
	return img
}

// atlasUV returns the texture rectangle of a glyph, normalized. Runes
// outside the atlas range map to '?'.
func atlasUV(g rune) (u0, v0, u1, v1 float32) {
	c := int(g)
	if c < FontFirst || c > FontLast {
		c = '?'
	}
	i := c - FontFirst
	col := i % FontCols
	row := i / FontCols
	u0 = float32(col) / FontCols
	v0 = float32(row) / FontRows
	u1 = u0 + 1.0/FontCols
	v1 = v0 + 1.0/FontRows
	return
}
