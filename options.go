package circlefavicon

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/setanarut/circlefavicon/utils"
	"go.uber.org/zap"
)

type Options struct {
	// Source image. Expected to be square; other aspect ratios are
	// stretched to fill the output square.
	Source string
	// Directory receiving every output file. It must already exist.
	OutputDir string
	// Edge lengths of the generated PNGs, processed in order.
	Sizes []int
	// Which generated PNG is reloaded and re-encoded as the ICO file.
	// Must be one of Sizes.
	IconSize int
	// File name of the ICO file inside OutputDir.
	IconName string
	// Palette extraction used for the suggested theme color.
	PaletteMethod utils.PaletteMethod
	// Nil disables logging.
	Logger *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Source:        "public/favicon.jpg",
		OutputDir:     "public",
		Sizes:         []int{16, 32, 192, 512},
		IconSize:      32,
		IconName:      "favicon.ico",
		PaletteMethod: utils.PaletteMethodDominantColor,
	}
}

// OutputPath returns OutputDir/favicon-{size}x{size}.png.
func (o Options) OutputPath(size int) string {
	return filepath.Join(o.OutputDir, fmt.Sprintf("favicon-%dx%d.png", size, size))
}

func (o Options) IconPath() string {
	return filepath.Join(o.OutputDir, o.IconName)
}

func (o Options) validate() error {
	if o.Source == "" {
		return errors.New("no source image")
	}
	if len(o.Sizes) == 0 {
		return errors.New("no output sizes")
	}
	for _, s := range o.Sizes {
		if s <= 0 {
			return errors.Errorf("invalid output size %d", s)
		}
	}
	if !slices.Contains(o.Sizes, o.IconSize) {
		return errors.Errorf("icon size %d is not among the output sizes %v", o.IconSize, o.Sizes)
	}
	if o.IconName == "" {
		return errors.New("no icon file name")
	}
	return nil
}
