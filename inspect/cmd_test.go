package inspect

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bmpview/bitmap"

	"golang.org/x/image/bmp"
)

func TestDescribe(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 4))
	for y := range 4 {
		for x := range 5 {
			src.SetRGBA(x, y, color.RGBA{0x20, 0x80, 0xc0, 0xff})
		}
	}
	src.SetRGBA(0, 3, color.RGBA{0xff, 0x00, 0x10, 0xff})

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatalf("could not encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "pic.bmp")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("could not write: %v", err)
	}

	var out bytes.Buffer
	if err := Describe(&out, path); err != nil {
		t.Fatalf("could not describe: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Signature:",
		"BM",
		"5 x 4",
		"bottom-up",
		"Stride:",
		"16",
		"#ff0010",
		"Dominant:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestDescribeErrors(t *testing.T) {
	if err := Describe(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.bmp")); !errors.Is(err, bitmap.ErrIO) {
		t.Errorf("got %v, want %v", err, bitmap.ErrIO)
	}

	path := filepath.Join(t.TempDir(), "short.bmp")
	if err := os.WriteFile(path, []byte("BM"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Describe(&bytes.Buffer{}, path); !errors.Is(err, bitmap.ErrTruncated) {
		t.Errorf("got %v, want %v", err, bitmap.ErrTruncated)
	}
}
