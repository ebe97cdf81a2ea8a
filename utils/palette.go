package utils

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// Swatch is a palette entry with its share of the sampled pixels.
type Swatch struct {
	Col    colorful.Color
	Weight float64
}

func (s Swatch) Hex() string {
	return s.Col.Clamped().Hex()
}

// Rec. 709 luma coefficients applied to linear RGB.
var lumaWeights = []float64{0.2126, 0.7152, 0.0722}

func Luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return floats.Dot(lumaWeights, []float64{r, g, b})
}

// SortPaletteByBrightness orders swatches from darkest to brightest.
func SortPaletteByBrightness(palette []Swatch) {
	slices.SortStableFunc(palette, func(a, b Swatch) int {
		ya, yb := Luminance(a.Col), Luminance(b.Col)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func sortByWeight(sw []Swatch) {
	slices.SortStableFunc(sw, func(a, b Swatch) int {
		if a.Weight > b.Weight {
			return -1
		}
		if a.Weight < b.Weight {
			return 1
		}
		return 0
	})
}

// ExtractDominantPalette returns up to k swatches, heaviest first. Empty
// clusters are dropped.
func ExtractDominantPalette(img image.Image, k int) []Swatch {
	if k <= 0 {
		return nil
	}
	found := dominantcolor.FindWeight(img, k)
	out := make([]Swatch, 0, len(found))
	for _, c := range found {
		if c.RGBA.A == 0 || c.Weight <= 0 {
			continue
		}
		col, _ := colorful.MakeColor(color.NRGBA{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: 255})
		out = append(out, Swatch{Col: col.Clamped(), Weight: c.Weight})
	}
	sortByWeight(out)
	return out
}

// ExtractKMeansPalette clusters the opaque pixels of img in RGB space.
// Fully transparent pixels, such as the corners of a circular icon, are
// not sampled.
func ExtractKMeansPalette(img image.Image, k int) []Swatch {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil {
		zap.L().Warn("kmeans partition failed", zap.Error(err))
		return nil
	}

	out := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, Swatch{Col: col, Weight: float64(len(c.Observations)) / float64(len(dataset))})
	}
	sortByWeight(out)
	return out
}

// ExtractPalette falls back to the dominant-color method when kmeans
// yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []Swatch {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		zap.L().Warn("kmeans returned empty palette, falling back", zap.Stringer("method", PaletteMethodDominantColor))
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}
