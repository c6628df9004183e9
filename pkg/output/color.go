package output

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RGB is an 8-bit display color
type RGB struct {
	R, G, B uint8
}

// Color converts to an opaque color.RGBA
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Quantize applies gamma 2 and maps a linear channel to [0,255].
// Values outside [0,1] saturate and NaN maps to 0.
func Quantize(linear float32) uint8 {
	v := 255.999 * math32.Sqrt(linear)
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ToRGB8 quantizes a linear color
func ToRGB8(c core.Vec3) RGB {
	return RGB{R: Quantize(c.X), G: Quantize(c.Y), B: Quantize(c.Z)}
}

// ColorSource is an image of linear colors, addressed with y = 0 at the top
type ColorSource interface {
	Size() (width, height int)
	Color(x, y int) core.Vec3
}

// ToRGBA quantizes a whole source into a new image
func ToRGBA(src ColorSource) *image.RGBA {
	width, height := src.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, ToRGB8(src.Color(x, y)).Color())
		}
	}
	return img
}
