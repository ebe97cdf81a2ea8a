package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPaletteMethodString(t *testing.T) {
	require.Equal(t, "dominantcolor", PaletteMethodDominantColor.String())
	require.Equal(t, "kmeans", PaletteMethodKMeans.String())
}

func TestLuminance(t *testing.T) {
	require.InDelta(t, 0, Luminance(colorful.Color{}), 1e-9)
	require.InDelta(t, 1, Luminance(colorful.Color{R: 1, G: 1, B: 1}), 1e-9)
	require.InDelta(t, 0.7152, Luminance(colorful.Color{G: 1}), 1e-9)
}

func TestSortPaletteByBrightness(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	blue := colorful.Color{B: 1}
	green := colorful.Color{G: 1}

	palette := []Swatch{{Col: white, Weight: 0.1}, {Col: green}, {Col: black, Weight: 0.5}, {Col: blue}}
	SortPaletteByBrightness(palette)

	require.Equal(t, []Swatch{{Col: black, Weight: 0.5}, {Col: blue}, {Col: green}, {Col: white, Weight: 0.1}}, palette)
}

func TestSwatchHex(t *testing.T) {
	require.Equal(t, "#ff0000", Swatch{Col: colorful.Color{R: 1}}.Hex())
	require.Equal(t, "#00ff00", Swatch{Col: colorful.Color{R: -0.2, G: 1.4}}.Hex())
}

func TestExtractPalette(t *testing.T) {
	want := color.NRGBA{R: 30, G: 140, B: 220, A: 255}
	exp, _ := colorful.MakeColor(want)

	for _, method := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(method.String(), func(t *testing.T) {
			sw := ExtractPalette(solid(24, 24, want), 4, method)
			require.NotEmpty(t, sw)
			require.Less(t, sw[0].Col.DistanceRgb(exp), 0.02)
			for i := 1; i < len(sw); i++ {
				require.GreaterOrEqual(t, sw[i-1].Weight, sw[i].Weight)
			}
		})
	}
}

func TestExtractPaletteEmpty(t *testing.T) {
	img := solid(8, 8, color.NRGBA{A: 255})
	require.Nil(t, ExtractDominantPalette(img, 0))
	require.Nil(t, ExtractKMeansPalette(img, 0))
	require.Nil(t, ExtractKMeansPalette(image.NewNRGBA(image.Rectangle{}), 3))
}

func TestExtractKMeansPaletteSkipsTransparent(t *testing.T) {
	img := solid(10, 10, color.NRGBA{R: 255, A: 255})
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 0})
		}
	}

	sw := ExtractKMeansPalette(img, 2)
	require.NotEmpty(t, sw)
	total := 0.0
	for _, s := range sw {
		require.Less(t, s.Col.DistanceRgb(colorful.Color{R: 1}), 0.01)
		total += s.Weight
	}
	require.InDelta(t, 1, total, 1e-9)

	// Nothing opaque to sample.
	require.Nil(t, ExtractKMeansPalette(solid(4, 4, color.NRGBA{}), 2))
}
