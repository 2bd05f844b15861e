package composite

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DefaultTileSize is the edge length of a backdrop square.
const DefaultTileSize = 15

// Checkerboard paints alternating squares starting at the top-left corner of
// the area it fills. The square in column i, row j gets Even when i+j is even
// and Odd otherwise. A TileSize below 1 means DefaultTileSize.
type Checkerboard struct {
	TileSize int
	Even     color.Color
	Odd      color.Color
}

// ColorAt returns the square color at offset (dx, dy) from the origin of the
// board.
func (c Checkerboard) ColorAt(dx, dy int) color.Color {
	if c.parity(dx, dy) == 0 {
		return c.Even
	}
	return c.Odd
}

// parity is 0 for Even squares and 1 for Odd ones.
func (c Checkerboard) parity(dx, dy int) int {
	size := c.tileSize()
	return (floorDiv(dx, size) + floorDiv(dy, size)) & 1
}

// Draw fills r with the board, clipping the last row and column of squares
// at the edges of r and of dst.
func (c Checkerboard) Draw(dst draw.Image, r image.Rectangle) {
	clip := r.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	size := c.tileSize()
	src := [2]*image.Uniform{image.NewUniform(c.Even), image.NewUniform(c.Odd)}
	for y := r.Min.Y; y < r.Max.Y; y += size {
		for x := r.Min.X; x < r.Max.X; x += size {
			tile := image.Rect(x, y, x+size, y+size).Intersect(clip)
			if tile.Empty() {
				continue
			}
			draw.Draw(dst, tile, src[c.parity(x-r.Min.X, y-r.Min.Y)], image.Point{}, draw.Src)
		}
	}
}

func (c Checkerboard) tileSize() int {
	if c.TileSize < 1 {
		return DefaultTileSize
	}
	return c.TileSize
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
