package circlefavicon

import (
	"fmt"
	"image"
	"io"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/setanarut/circlefavicon/utils"
	"go.uber.org/zap"
)

// paletteSize is the number of swatches sampled for the theme color.
const paletteSize = 5

type Result struct {
	// Written files in creation order, ICO last.
	Files []string
	// Heaviest palette swatch of the icon, "#rrggbb".
	ThemeColor string
	// Palette swatches from darkest to brightest.
	Palette []string
}

type Generator struct {
	opt Options
	log *zap.Logger
}

func NewGenerator(opt Options) *Generator {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{opt: opt, log: logger}
}

// Generate writes every circular PNG and the ICO file described by opt.
func Generate(opt Options) (Result, error) {
	return NewGenerator(opt).Run()
}

// Run processes the sizes in order and stops at the first failure. Files
// written before the failure are kept.
func (g *Generator) Run() (Result, error) {
	var res Result
	if err := g.opt.validate(); err != nil {
		return res, err
	}

	for _, size := range g.opt.Sizes {
		out := g.opt.OutputPath(size)
		if err := g.Transform(g.opt.Source, out, size); err != nil {
			return res, err
		}
		res.Files = append(res.Files, out)
	}

	icon, err := g.WriteIcon(g.opt.OutputPath(g.opt.IconSize), g.opt.IconPath())
	if err != nil {
		return res, err
	}
	res.Files = append(res.Files, g.opt.IconPath())

	theme, palette := ThemeColor(icon, g.opt.PaletteMethod)
	if theme != nil {
		res.ThemeColor = theme.Hex()
		for _, c := range palette {
			res.Palette = append(res.Palette, c.Hex())
		}
		g.log.Info("theme color",
			zap.String("hex", res.ThemeColor),
			zap.Strings("palette", res.Palette),
			zap.Stringer("method", g.opt.PaletteMethod))
	}
	return res, nil
}

// Transform reads src and writes a size×size circular PNG to dst.
func (g *Generator) Transform(src, dst string, size int) error {
	if size <= 0 {
		return errors.Errorf("invalid output size %d", size)
	}
	img, err := utils.ReadImage(src)
	if err != nil {
		return &DecodeError{Path: src, Err: err}
	}
	if err := utils.SaveImage(Circular(img, size), dst); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	g.log.Info("created circular favicon",
		zap.String("path", dst),
		zap.String("size", fmt.Sprintf("%dx%d", size, size)))
	return nil
}

// WriteIcon reloads the PNG at pngPath and stores it as a single-entry ICO
// file at icoPath. The reloaded image is returned.
func (g *Generator) WriteIcon(pngPath, icoPath string) (image.Image, error) {
	img, err := utils.ReadImage(pngPath)
	if err != nil {
		return nil, &DecodeError{Path: pngPath, Err: err}
	}
	err = utils.WriteFile(icoPath, func(w io.Writer) error {
		return errors.Wrap(ico.Encode(w, img), "encode ico")
	})
	if err != nil {
		return nil, &WriteError{Path: icoPath, Err: err}
	}
	g.log.Info("created favicon.ico", zap.String("path", icoPath))
	return img, nil
}

// ThemeColor samples the square inscribed in the icon's circle, where every
// pixel is opaque, and returns the heaviest swatch together with the palette
// ordered from darkest to brightest. It returns nil for images too small to
// sample.
func ThemeColor(icon image.Image, method utils.PaletteMethod) (*utils.Swatch, []utils.Swatch) {
	b := icon.Bounds()
	side := min(b.Dx(), b.Dy()) * 6 / 10
	if side <= 0 {
		return nil, nil
	}
	sample := imaging.CropCenter(icon, side, side)

	swatches := utils.ExtractPalette(sample, paletteSize, method)
	if len(swatches) == 0 {
		return nil, nil
	}
	theme := swatches[0]

	palette := slices.Clone(swatches)
	utils.SortPaletteByBrightness(palette)
	return &theme, palette
}
