package bitmap

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// fixture describes a bitmap file to synthesize. rows are listed top to
// bottom as they appear on screen; the sign of topDown decides storage order.
type fixture struct {
	rows        [][]color.RGBA
	topDown     bool
	compression uint32
	bpp         uint16
	signature   string
	width       *int32
	height      *int32
	gap         int
}

func (f fixture) bytes(t *testing.T) []byte {
	t.Helper()

	height := len(f.rows)
	width := 0
	if height > 0 {
		width = len(f.rows[0])
	}
	stride := (width*3 + 3) / 4 * 4

	bpp := f.bpp
	if bpp == 0 {
		bpp = 24
	}
	sig := [2]byte{'B', 'M'}
	if f.signature != "" {
		copy(sig[:], f.signature)
	}
	hdrWidth := int32(width)
	if f.width != nil {
		hdrWidth = *f.width
	}
	hdrHeight := int32(height)
	if f.topDown {
		hdrHeight = -hdrHeight
	}
	if f.height != nil {
		hdrHeight = *f.height
	}

	offset := uint32(fileHeaderLen + infoHeaderLen + f.gap)
	h := Header{
		File: FileHeader{
			Signature:  sig,
			FileSize:   offset + uint32(stride*height),
			DataOffset: offset,
		},
		Info: InfoHeader{
			HeaderSize:      infoHeaderLen,
			Width:           hdrWidth,
			Height:          hdrHeight,
			Planes:          1,
			BitsPerPixel:    bpp,
			Compression:     f.compression,
			ImageSize:       uint32(stride * height),
			XPixelsPerMeter: 2835,
			YPixelsPerMeter: 2835,
		},
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, h.File); err != nil {
		t.Fatalf("could not write file header: %v", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, h.Info); err != nil {
		t.Fatalf("could not write info header: %v", err)
	}
	buf.Write(make([]byte, f.gap))

	for i := range height {
		visual := height - 1 - i
		if f.topDown {
			visual = i
		}
		row := make([]byte, stride)
		for x, c := range f.rows[visual] {
			row[x*3], row[x*3+1], row[x*3+2] = c.B, c.G, c.R
		}
		buf.Write(row)
	}

	return buf.Bytes()
}

func (f fixture) file(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.bmp")
	if err := os.WriteFile(path, f.bytes(t), 0o644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
	return path
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// gradient returns width x height distinct colors, top row first.
func gradient(width, height int) [][]color.RGBA {
	rows := make([][]color.RGBA, height)
	for y := range rows {
		rows[y] = make([]color.RGBA, width)
		for x := range rows[y] {
			rows[y][x] = rgb(uint8(x*17), uint8(y*29), uint8(x+y*width))
		}
	}
	return rows
}
