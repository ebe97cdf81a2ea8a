package circlefavicon

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// CircleMask returns a size×size mask that is 255 on and inside the circle
// inscribed in (0,0)-(size,size) and 0 elsewhere. The test
// (x-s/2)² + (y-s/2)² <= (s/2)² is evaluated doubled to stay in integers.
func CircleMask(size int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, max(size, 0), max(size, 0)))
	r2 := size * size
	for y := 0; y < size; y++ {
		dy := 2*y - size
		for x := 0; x < size; x++ {
			dx := 2*x - size
			if dx*dx+dy*dy <= r2 {
				mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return mask
}

// PutAlpha replaces the alpha channel of dst with mask over their common
// bounds. Color channels are left untouched.
func PutAlpha(dst *image.NRGBA, mask *image.Alpha) {
	r := dst.Rect.Intersect(mask.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)+3] = mask.Pix[mask.PixOffset(x, y)]
		}
	}
}

// Circular stretches src to size×size with a Lanczos filter and clips it to
// the inscribed circle on a transparent canvas.
func Circular(src image.Image, size int) *image.NRGBA {
	if size <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	resized := imaging.Resize(src, size, size, imaging.Lanczos)

	rect := image.Rect(0, 0, size, size)
	canvas := image.NewNRGBA(rect)
	draw.Draw(canvas, rect, resized, resized.Bounds().Min, draw.Src)
	PutAlpha(canvas, CircleMask(size))
	return canvas
}
