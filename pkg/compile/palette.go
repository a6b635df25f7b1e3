package compile

import "github.com/matzehuels/vischart/pkg/scene"

// Palette is the categorical colour cycle. The first entry is the default
// colour for single-series charts.
var Palette = []string{
	"#ff69b4", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

var paletteColors = func() []scene.Color {
	out := make([]scene.Color, len(Palette))
	for i, hex := range Palette {
		out[i] = scene.MustParseColor(hex)
	}
	return out
}()

// PaletteColor returns the i-th palette colour, wrapping around.
func PaletteColor(i int) scene.Color {
	if i < 0 {
		i = 0
	}
	return paletteColors[i%len(paletteColors)]
}

// seriesIndex returns the position of key in series, or 0 when absent.
func seriesIndex(series []string, key string) int {
	for i, s := range series {
		if s == key {
			return i
		}
	}
	return 0
}
