package rain

// GlyphPool is the fixed character set the rain draws from. Stateless pure
// lookup; the pool sticks to the atlas range (ASCII 32-126) and leans on
// digits and angular punctuation for the code-rain look.
const GlyphPool = "01010189ZT$#%&*+=-<>[]{}()/\\|ABCDEFHKLMNPQRSVWXY023456789"

var glyphPoolRunes = []rune(GlyphPool)

// RandomGlyph picks a glyph from the pool using the supplied RNG.
func RandomGlyph(r *Rand) rune {
	return glyphPoolRunes[r.Intn(len(glyphPoolRunes))]
}
