package framebuffer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/sphere-pathtracer/pkg/core"
)

// Buffer is a width x height grid of linear radiance values stored row-major
// with y = 0 at the top. Values are not clamped until they are encoded.
//
// Buffer implements image.Image so it can be handed to any encoder; At
// quantizes the same way the PPM and BMP writers do.
type Buffer struct {
	width, height int
	pixels        []core.Vec3
}

// New creates a buffer filled with (1, 1, 1)
func New(width, height int) *Buffer {
	return NewWithColor(width, height, core.Ones())
}

// NewWithColor creates a buffer filled with the given color
func NewWithColor(width, height int, fill core.Vec3) *Buffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("framebuffer: invalid size %dx%d", width, height))
	}

	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		pixels[i] = fill
	}

	return &Buffer{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *Buffer) Height() int { return b.height }

// SetPixel stores a radiance value at (x, y). Coordinates must be in range.
func (b *Buffer) SetPixel(x, y int, rgb core.Vec3) {
	b.pixels[b.index(x, y)] = rgb
}

// Pixel returns the radiance value at (x, y). Coordinates must be in range.
func (b *Buffer) Pixel(x, y int) core.Vec3 {
	return b.pixels[b.index(x, y)]
}

// Pixels returns the underlying row-major pixel slice
func (b *Buffer) Pixels() []core.Vec3 {
	return b.pixels
}

// Row returns the pixels of row y; writes through the slice update the buffer
func (b *Buffer) Row(y int) []core.Vec3 {
	start := b.index(0, y)
	return b.pixels[start : start+b.width]
}

// Equal reports whether two buffers have the same size and identical pixels
func (b *Buffer) Equal(other *Buffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pixels {
		if b.pixels[i] != other.pixels[i] {
			return false
		}
	}
	return true
}

func (b *Buffer) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("framebuffer: pixel (%d, %d) outside %dx%d", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// ColorModel implements image.Image
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements image.Image with the 8-bit quantization used by every encoder
func (b *Buffer) At(x, y int) color.Color {
	r, g, bl := quantize(b.Pixel(x, y))
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// ToRGBA converts the buffer into an 8-bit image
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r, g, bl := quantize(b.Pixel(x, y))
			offset := img.PixOffset(x, y)
			img.Pix[offset+0] = r
			img.Pix[offset+1] = g
			img.Pix[offset+2] = bl
			img.Pix[offset+3] = 255
		}
	}
	return img
}

// quantizeChannel maps a linear value to floor(clamp(v, 0, 1) * 255).
// NaN maps to 0.
func quantizeChannel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Floor(v * 255))
}

func quantize(rgb core.Vec3) (r, g, b uint8) {
	return quantizeChannel(rgb.X), quantizeChannel(rgb.Y), quantizeChannel(rgb.Z)
}
