// Package viewer holds the picture currently on display and paints it.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"sync/atomic"

	"bmpview/bitmap"
	"bmpview/composite"

	"golang.org/x/image/draw"
)

// State owns the displayed picture. Loads swap in a freshly decoded image
// only when decoding succeeds, so a paint always sees one complete image.
type State struct {
	comp    *composite.Compositor
	current atomic.Pointer[bitmap.Image]
}

func NewState(comp *composite.Compositor) *State {
	if comp == nil {
		comp = composite.Default
	}
	return &State{comp: comp}
}

// Load decodes the bitmap at path and displays it. On error the previous
// picture stays.
func (s *State) Load(path string) error {
	img, err := bitmap.DecodeFile(path)
	if err != nil {
		return err
	}

	s.swap(img, path)
	return nil
}

// LoadFrom is Load for an already opened file; name is only used in logs and
// errors.
func (s *State) LoadFrom(r io.Reader, name string) error {
	img, err := bitmap.Decode(r)
	if err != nil {
		return fmt.Errorf("could not decode %q: %w", name, err)
	}

	s.swap(img, name)
	return nil
}

func (s *State) swap(img *bitmap.Image, name string) {
	s.current.Store(img)
	slog.Info("loaded", "file", name, "width", img.Width, "height", img.Height,
		"background", img.Background)
}

// Image returns the displayed picture, nil before the first successful load.
func (s *State) Image() *bitmap.Image {
	return s.current.Load()
}

// Background returns the transparent color, white when nothing is loaded.
func (s *State) Background() color.RGBA {
	if img := s.current.Load(); img != nil {
		return img.Background
	}
	return bitmap.White
}

// Paint draws the backdrop and the current picture over bounds of dst.
func (s *State) Paint(dst draw.Image, bounds image.Rectangle) {
	img := s.current.Load()
	bg := bitmap.White
	if img != nil {
		bg = img.Background
	}
	s.comp.Render(dst, img, bg, bounds)
}

// Frame renders a fresh width x height surface.
func (s *State) Frame(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	s.Paint(dst, dst.Bounds())
	return dst
}
