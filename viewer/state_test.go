package viewer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"bmpview/bitmap"
	"bmpview/composite"

	"golang.org/x/image/bmp"
)

func writeBMP(t *testing.T, name string, width, height int, fill func(x, y int) color.RGBA) string {
	t.Helper()

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			src.SetRGBA(x, y, fill(x, y))
		}
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatalf("could not encode %s: %v", name, err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("could not write %s: %v", name, err)
	}
	return path
}

func solid(c color.RGBA) func(int, int) color.RGBA {
	return func(int, int) color.RGBA { return c }
}

func TestStateEmpty(t *testing.T) {
	s := NewState(nil)
	if s.Image() != nil {
		t.Fatal("new state holds an image")
	}
	if s.Background() != bitmap.White {
		t.Errorf("background %v, want white", s.Background())
	}

	frame := s.Frame(30, 30)
	want := composite.Default.Backdrop
	for y := range 30 {
		for x := range 30 {
			if got := frame.RGBAAt(x, y); got != want.ColorAt(x, y) {
				t.Fatalf("pixel (%d, %d) = %v, want backdrop", x, y, got)
			}
		}
	}
}

func TestStateLoad(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	path := writeBMP(t, "red.bmp", 4, 3, func(x, y int) color.RGBA {
		if y == 2 && x == 0 {
			return color.RGBA{0, 0, 0xff, 0xff}
		}
		return red
	})

	s := NewState(nil)
	if err := s.Load(path); err != nil {
		t.Fatalf("could not load: %v", err)
	}

	if img := s.Image(); img == nil || img.Width != 4 || img.Height != 3 {
		t.Fatalf("loaded image %+v", img)
	}
	if got, want := s.Background(), (color.RGBA{0, 0, 0xff, 0xff}); got != want {
		t.Errorf("background %v, want %v", got, want)
	}

	frame := s.Frame(10, 10)
	if got := frame.RGBAAt(3, 7); got != red {
		t.Errorf("pixel (3, 7) = %v, want %v", got, red)
	}
	if got := frame.RGBAAt(0, 9); got == (color.RGBA{0, 0, 0xff, 0xff}) {
		t.Error("background pixel was drawn")
	}
}

func TestStateFailedLoadKeepsImage(t *testing.T) {
	good := writeBMP(t, "good.bmp", 2, 2, solid(color.RGBA{1, 2, 3, 0xff}))

	s := NewState(nil)
	if err := s.Load(good); err != nil {
		t.Fatalf("could not load: %v", err)
	}
	before := s.Image()

	data, err := os.ReadFile(good)
	if err != nil {
		t.Fatalf("could not read fixture: %v", err)
	}
	data[30] = 1 // compression
	compressed := filepath.Join(t.TempDir(), "rle.bmp")
	if err := os.WriteFile(compressed, data, 0o644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}

	if err := s.Load(compressed); !errors.Is(err, bitmap.ErrUnsupportedFormat) {
		t.Errorf("got %v, want %v", err, bitmap.ErrUnsupportedFormat)
	}
	if err := s.Load(filepath.Join(t.TempDir(), "missing.bmp")); !errors.Is(err, bitmap.ErrIO) {
		t.Errorf("got %v, want %v", err, bitmap.ErrIO)
	}
	if err := s.LoadFrom(bytes.NewReader(data[:20]), "short"); !errors.Is(err, bitmap.ErrTruncated) {
		t.Errorf("got %v, want %v", err, bitmap.ErrTruncated)
	}

	if s.Image() != before {
		t.Error("failed load replaced the image")
	}
	if s.Background() != (color.RGBA{1, 2, 3, 0xff}) {
		t.Errorf("background changed to %v", s.Background())
	}
}

func TestStateReloadReplaces(t *testing.T) {
	big := writeBMP(t, "big.bmp", 8, 8, func(x, y int) color.RGBA {
		return color.RGBA{uint8(x * 30), uint8(y * 30), 7, 0xff}
	})
	small := writeBMP(t, "small.bmp", 2, 1, func(x, _ int) color.RGBA {
		return color.RGBA{0, 0, uint8(x * 100), 0xff}
	})

	s := NewState(nil)
	if err := s.Load(big); err != nil {
		t.Fatalf("could not load: %v", err)
	}

	f, err := os.Open(small)
	if err != nil {
		t.Fatalf("could not open: %v", err)
	}
	defer f.Close()
	if err := s.LoadFrom(f, small); err != nil {
		t.Fatalf("could not reload: %v", err)
	}

	img := s.Image()
	if img.Width != 2 || img.Height != 1 || len(img.Pix) != img.Stride {
		t.Fatalf("reloaded image is %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}
	if s.Background() != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("background %v, want black", s.Background())
	}

	frame := s.Frame(8, 8)
	backdrop := composite.Default.Backdrop
	for y := range 8 {
		for x := range 8 {
			if x == 1 && y == 7 {
				continue
			}
			if got := frame.RGBAAt(x, y); got != backdrop.ColorAt(x, y) {
				t.Fatalf("pixel (%d, %d) = %v, residue of the previous image", x, y, got)
			}
		}
	}
	if got := frame.RGBAAt(1, 7); got != (color.RGBA{0, 0, 100, 0xff}) {
		t.Errorf("pixel (1, 7) = %v", got)
	}
}
