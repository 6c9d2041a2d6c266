package pages

// GlyphGroup is one section of the printable handwriting grid.
type GlyphGroup struct {
	Label   string
	Columns int
	Glyphs  []string
}

var punctuation = []string{".", ",", "!", "?", ":", ";", "'", `"`, "-", "_", "(", ")", "@", "#", "$", "%", "&", "*"}

func runeRange(from, to rune) []string {
	out := make([]string, 0, to-from+1)
	for r := from; r <= to; r++ {
		out = append(out, string(r))
	}
	return out
}

// TemplateGlyphs lists every character the handwriting template asks for, in
// print order.
func TemplateGlyphs() []GlyphGroup {
	return []GlyphGroup{
		{Label: "Uppercase Letters (A-Z)", Columns: 4, Glyphs: runeRange('A', 'Z')},
		{Label: "Lowercase Letters (a-z)", Columns: 4, Glyphs: runeRange('a', 'z')},
		{Label: "Numbers (0-9)", Columns: 5, Glyphs: runeRange('0', '9')},
		{Label: "Punctuation & Symbols", Columns: 6, Glyphs: punctuation},
	}
}
