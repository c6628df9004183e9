package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for output formats with no encoder
var ErrUnsupportedFormat = errors.New("output: unsupported format")

// Format names an output encoding
type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// Formats lists every supported format
var Formats = []Format{PPM, PNG, WebP, TGA}

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Sink receives a header and then every pixel in row-major order, top row first
type Sink interface {
	WriteHeader(width, height int) error
	WritePixel(c RGB) error
	// Close flushes buffered output. It does not close the underlying writer.
	Close() error
}

// Options tune how a sink encodes
type Options struct {
	// Width rescales the image to this width, keeping the aspect ratio. 0 keeps the render size.
	Width int
}

// NewSink returns a sink for format writing to w
func NewSink(format Format, w io.Writer, opts Options) (Sink, error) {
	var encode Encoder
	switch format {
	case PPM:
		if opts.Width <= 0 {
			return NewPPMSink(w), nil
		}
		encode = EncodePPM
	case PNG:
		encode = png.Encode
	case WebP:
		encode = func(w io.Writer, img image.Image) error {
			return nativewebp.Encode(w, img, nil)
		}
	case TGA:
		encode = tga.Encode
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &ImageSink{w: w, encode: encode, width: opts.Width}, nil
}

// Write quantizes src and streams it through sink, then closes the sink
func Write(sink Sink, src ColorSource) error {
	width, height := src.Size()
	if err := sink.WriteHeader(width, height); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if err := sink.WritePixel(ToRGB8(src.Color(x, y))); err != nil {
				return err
			}
		}
	}
	return sink.Close()
}

// PPMSink streams an ASCII (P3) PPM
type PPMSink struct {
	w *bufio.Writer
}

// NewPPMSink creates a PPM sink writing to w
func NewPPMSink(w io.Writer) *PPMSink {
	return &PPMSink{w: bufio.NewWriter(w)}
}

func (s *PPMSink) WriteHeader(width, height int) error {
	if _, err := fmt.Fprintf(s.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("output: write ppm header: %w", err)
	}
	return nil
}

func (s *PPMSink) WritePixel(c RGB) error {
	if _, err := fmt.Fprintf(s.w, "%d %d %d\n", c.R, c.G, c.B); err != nil {
		return fmt.Errorf("output: write ppm pixel: %w", err)
	}
	return nil
}

func (s *PPMSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("output: flush ppm: %w", err)
	}
	return nil
}

// EncodePPM writes img as an ASCII PPM
func EncodePPM(w io.Writer, img image.Image) error {
	sink := NewPPMSink(w)
	b := img.Bounds()
	if err := sink.WriteHeader(b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if err := sink.WritePixel(RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}); err != nil {
				return err
			}
		}
	}
	return sink.Close()
}

// Encoder writes a complete image
type Encoder func(w io.Writer, img image.Image) error

// ImageSink collects pixels into an image and encodes it on Close
type ImageSink struct {
	w      io.Writer
	encode Encoder
	width  int

	img  *image.RGBA
	next int
}

func (s *ImageSink) WriteHeader(width, height int) error {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.next = 0
	return nil
}

func (s *ImageSink) WritePixel(c RGB) error {
	if s.img == nil {
		return errors.New("output: pixel written before header")
	}
	width := s.img.Rect.Dx()
	if width == 0 || s.next >= width*s.img.Rect.Dy() {
		return errors.New("output: too many pixels")
	}
	s.img.SetRGBA(s.next%width, s.next/width, c.Color())
	s.next++
	return nil
}

func (s *ImageSink) Close() error {
	if s.img == nil {
		return errors.New("output: close before header")
	}
	var img image.Image = s.img
	if s.width > 0 && s.width != s.img.Rect.Dx() {
		img = Resize(s.img, s.width)
	}
	if err := s.encode(s.w, img); err != nil {
		return fmt.Errorf("output: encode: %w", err)
	}
	return nil
}

// Resize scales img to width pixels wide, keeping the aspect ratio
func Resize(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	height := max(1, b.Dy()*width/max(1, b.Dx()))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
