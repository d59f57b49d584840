package pixfx

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder for Load and Decode
)

// Format names an image encoding.
type Format string

// Output formats understood by Encode and Save.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultQuality is the JPEG quality used when EncodeOptions.Quality is zero.
const DefaultQuality = 90

// EncodeOptions controls image encoding.
type EncodeOptions struct {
	// Format selects the encoder. If empty, Save derives it from the file
	// extension and Encode uses PNG.
	Format Format

	// Quality is the JPEG quality (1-100). Zero means DefaultQuality.
	Quality int
}

// ParseFormat maps a format name or file extension (with or without the
// leading dot) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Ext returns the canonical file extension for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tif"
	default:
		return "." + string(f)
	}
}

// Load opens and decodes the image file at path.
//
// A path that cannot be opened yields an error wrapping ErrNotFound;
// content that is not a supported image yields an error wrapping ErrDecode.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	defer func() { _ = f.Close() }()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Debug("pixfx: image loaded", "path", path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// LoadBuffer is Load followed by FromImage.
func LoadBuffer(path string) (*Buffer, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// FromImage converts img into a buffer of its red, green and blue samples.
// Any alpha channel is discarded after conversion to non-premultiplied form.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	origin := nrgba.Bounds().Min

	buf := NewBuffer(height, width)
	for y := range height {
		row := nrgba.Pix[nrgba.PixOffset(origin.X, origin.Y+y):]
		dst := buf.data[y*width*Channels:]
		for x := range width {
			dst[x*Channels+0] = int16(row[x*4+0])
			dst[x*Channels+1] = int16(row[x*4+1])
			dst[x*Channels+2] = int16(row[x*4+2])
		}
	}
	return buf
}

// ToImage clamps every sample to [0, 255] and returns an opaque image.
func ToImage(b *Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		src := b.data[y*b.width*Channels:]
		row := img.Pix[y*img.Stride:]
		for x := range b.width {
			row[x*4+0] = clampSample(src[x*Channels+0])
			row[x*4+1] = clampSample(src[x*Channels+1])
			row[x*4+2] = clampSample(src[x*Channels+2])
			row[x*4+3] = 255
		}
	}
	return img
}

// Encode writes img to w using opts.Format (PNG when empty).
func Encode(w io.Writer, img image.Image, opts EncodeOptions) error {
	format := opts.Format
	if format == "" {
		format = FormatPNG
	}

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(opts.Quality)})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, format, err)
	}
	return nil
}

// EncodeToBytes encodes img into a byte slice.
func EncodeToBytes(img image.Image, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img into the file at path. When opts.Format is empty the
// format is derived from the file extension.
func Save(path string, img image.Image, opts EncodeOptions) error {
	if opts.Format == "" {
		format, err := ParseFormat(filepath.Ext(path))
		if err != nil {
			return err
		}
		opts.Format = format
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrEncode, path, err)
	}

	if err := Encode(f, img, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// SaveBuffer is ToImage followed by Save.
func SaveBuffer(path string, b *Buffer, opts EncodeOptions) error {
	return Save(path, ToImage(b), opts)
}

func clampQuality(q int) int {
	if q == 0 {
		return DefaultQuality
	}
	return min(max(q, 1), 100)
}
