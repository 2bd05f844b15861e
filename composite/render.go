// Package composite draws decoded bitmaps over a checkerboard backdrop.
package composite

import (
	"fmt"
	"image"
	"image/color"

	"bmpview/bitmap"

	"golang.org/x/image/draw"
)

// Compositor paints a backdrop and overlays a bitmap anchored to the
// bottom-left corner of the target area.
type Compositor struct {
	Backdrop Checkerboard
}

// New builds a compositor whose backdrop alternates the first two colors of
// pal in squares of tileSize.
func New(tileSize int, pal color.Palette) (*Compositor, error) {
	if tileSize < 1 {
		return nil, fmt.Errorf("invalid tile size: %d", tileSize)
	}
	if len(pal) < 2 {
		return nil, fmt.Errorf("backdrop needs 2 colors, got %d", len(pal))
	}

	return &Compositor{
		Backdrop: Checkerboard{
			TileSize: tileSize,
			Even:     pal[0],
			Odd:      pal[1],
		},
	}, nil
}

// Default uses 15 unit squares of light and mid gray.
var Default = &Compositor{
	Backdrop: Checkerboard{
		TileSize: DefaultTileSize,
		Even:     color.RGBA{230, 230, 230, 0xff},
		Odd:      color.RGBA{200, 200, 200, 0xff},
	},
}

// Render draws the backdrop over bounds, then every pixel of img whose color
// differs from bg. Row 0 of img, the bottom of the picture, lands on the last
// row of bounds. Anything falling outside bounds or dst is dropped. A nil bg
// means img.Background.
func (c *Compositor) Render(dst draw.Image, img *bitmap.Image, bg color.Color, bounds image.Rectangle) {
	c.Backdrop.Draw(dst, bounds)

	if img.Empty() || len(img.Pix) == 0 {
		return
	}

	clip := bounds.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	key := img.Background
	if bg != nil {
		key = color.RGBAModel.Convert(bg).(color.RGBA)
		key.A = 0xff
	}

	rgba, _ := dst.(*image.RGBA)
	originX, originY := bounds.Min.X, bounds.Max.Y-img.Height
	for sourceY := range img.Height {
		y := originY + img.Height - 1 - sourceY
		if y < clip.Min.Y || y >= clip.Max.Y {
			continue
		}

		for x := range img.Width {
			dx := originX + x
			if dx < clip.Min.X {
				continue
			} else if dx >= clip.Max.X {
				break
			}

			px := img.RowAt(x, sourceY)
			if px == key {
				continue
			}
			if rgba != nil {
				rgba.SetRGBA(dx, y, px)
			} else {
				dst.Set(dx, y, px)
			}
		}
	}
}

// Render composites with the Default compositor.
func Render(dst draw.Image, img *bitmap.Image, bg color.Color, bounds image.Rectangle) {
	Default.Render(dst, img, bg, bounds)
}
