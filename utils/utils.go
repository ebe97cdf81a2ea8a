package utils

import (
	"bufio"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/webp"
)

type FileType int

const (
	UNKNOWN FileType = iota
	JPEG
	PNG
	GIF
	WEBP
)

func (t FileType) String() string {
	switch t {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	case GIF:
		return "gif"
	case WEBP:
		return "webp"
	default:
		return "unknown"
	}
}

var ErrUnsupportedFormat = errors.New("unsupported image format")

// sniffLen covers the longest magic check (RIFF....WEBP).
const sniffLen = 12

// GetFileType identifies an image format from the leading bytes of a file.
func GetFileType(buf []byte) FileType {
	switch {
	case len(buf) > 2 && buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF:
		return JPEG
	case len(buf) > 3 && buf[0] == 0x89 && buf[1] == 'P' && buf[2] == 'N' && buf[3] == 'G':
		return PNG
	case len(buf) > 2 && buf[0] == 'G' && buf[1] == 'I' && buf[2] == 'F':
		return GIF
	case len(buf) > 11 && string(buf[0:4]) == "RIFF" && string(buf[8:12]) == "WEBP":
		return WEBP
	default:
		return UNKNOWN
	}
}

// Decode reads a JPEG, PNG, GIF or WebP image from r.
func Decode(r io.Reader) (image.Image, FileType, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, UNKNOWN, errors.Wrap(err, "read header")
	}

	var img image.Image
	ft := GetFileType(head)
	switch ft {
	case JPEG:
		img, err = jpeg.Decode(br)
	case PNG:
		img, err = png.Decode(br)
	case GIF:
		img, err = gif.Decode(br)
	case WEBP:
		img, err = webp.Decode(br)
	default:
		return nil, UNKNOWN, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, ft, errors.Wrapf(err, "decode %s", ft)
	}
	return img, ft, nil
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := Decode(file)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return img, nil
}

func SaveImage(img image.Image, filename string) error {
	return WriteFile(filename, func(w io.Writer) error {
		return errors.Wrap(png.Encode(w, img), "encode png")
	})
}

// WriteFile streams encode's output into filename. The file is removed
// again if encoding fails so a half-written image never stays behind.
func WriteFile(filename string, encode func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
