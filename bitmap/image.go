package bitmap

import (
	"image"
	"image/color"
)

// White is the background color of an empty picture.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Image is a decoded 24-bit picture kept in the file's storage layout.
type Image struct {
	Width  int
	Height int
	// Pix holds the pixels as blue, green, red triplets, bottom row first. The
	// pixel at column x of stored row r starts at Pix[r*Stride + x*3].
	Pix []uint8
	// Stride is the padded row length, always a multiple of 4.
	Stride int
	// Background is the color of the first stored pixel, the bottom-left one.
	// Pixels of this color are transparent when composited.
	Background color.RGBA
}

// NewImage allocates a black picture of the given size.
func NewImage(width, height int) *Image {
	stride := (width*bytesPerPixel + 3) / 4 * 4
	m := &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, stride*height),
		Stride: stride,
	}
	m.Background = m.sampleBackground()
	return m
}

func (m *Image) Empty() bool {
	return m == nil || m.Width == 0 || m.Height == 0
}

// RowAt returns the color of column x in stored row row, where row 0 is the
// bottom of the picture.
func (m *Image) RowAt(x, row int) color.RGBA {
	i := row*m.Stride + x*bytesPerPixel
	return color.RGBA{R: m.Pix[i+2], G: m.Pix[i+1], B: m.Pix[i], A: 0xff}
}

// SetRowAt stores c at column x of stored row row, dropping alpha.
func (m *Image) SetRowAt(x, row int, c color.RGBA) {
	i := row*m.Stride + x*bytesPerPixel
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = c.B, c.G, c.R
	if i == 0 {
		m.Background = m.sampleBackground()
	}
}

func (m *Image) sampleBackground() color.RGBA {
	if len(m.Pix) < bytesPerPixel || m.Empty() {
		return White
	}
	return m.RowAt(0, 0)
}

func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At uses image coordinates, y growing downwards.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	return m.RowAt(x, m.Height-1-y)
}

// Opaque is always true: the format carries no alpha.
func (m *Image) Opaque() bool {
	return true
}
