// Package bitmap decodes uncompressed 24-bit BMP files into their stored
// bottom-up BGR layout.
package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// MaxPixelBytes caps the pixel buffer a single file may ask for.
const MaxPixelBytes = 1 << 30

var (
	ErrIO                = errors.New("bitmap: i/o error")
	ErrUnsupportedFormat = errors.New("bitmap: unsupported format")
	ErrTruncated         = errors.New("bitmap: truncated file")
)

// DecodeFile opens and decodes the bitmap at path.
func DecodeFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w: %w", path, ErrIO, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close bitmap", "file", path, "error", closeErr)
		}
	}()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return m, nil
}

// Decode reads a bitmap from r, which must be positioned at the file
// signature. When r is an io.Seeker the gap between the headers and the
// pixel data is skipped by seeking, otherwise it is read and discarded.
//
// A negative header height marks top-down rows; they are reversed here so the
// returned Image is always bottom-up and its Background is always the
// bottom-left pixel.
func Decode(r io.Reader) (*Image, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}
	if err = h.validate(); err != nil {
		return nil, err
	}

	stride, size, err := h.layout()
	if err != nil {
		return nil, err
	}

	if err = skip(r, int64(h.File.DataOffset)-fileHeaderLen-infoHeaderLen); err != nil {
		return nil, err
	}

	// Grow the buffer as data arrives so a lying header on a short file does
	// not allocate the whole declared size up front.
	buf := bytes.NewBuffer(make([]byte, 0, min(size, 1<<20)))
	n, err := io.CopyN(buf, r, int64(size))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("pixel data has %d of %d bytes: %w", n, size, ErrTruncated)
		}
		return nil, fmt.Errorf("could not read pixel data: %w: %w", ErrIO, err)
	}

	width, height := h.Size()
	m := &Image{
		Width:  int(width),
		Height: int(height),
		Pix:    buf.Bytes(),
		Stride: stride,
	}
	if h.TopDown() && size > 0 {
		m.flipRows()
	}
	m.Background = m.sampleBackground()

	return m, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}

	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(n, io.SeekCurrent); err != nil {
			return fmt.Errorf("could not seek to pixel data: %w: %w", ErrIO, err)
		}
		return nil
	}

	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("could not reach pixel data: %w", ErrTruncated)
		}
		return fmt.Errorf("could not skip to pixel data: %w: %w", ErrIO, err)
	}
	return nil
}

func (m *Image) flipRows() {
	tmp := make([]byte, m.Stride)
	for top, bottom := 0, m.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := m.Pix[top*m.Stride : (top+1)*m.Stride]
		b := m.Pix[bottom*m.Stride : (bottom+1)*m.Stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
