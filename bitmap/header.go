package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

/*
typedef struct tagBITMAPFILEHEADER {
  WORD  bfType;
  DWORD bfSize;
  WORD  bfReserved1;
  WORD  bfReserved2;
  DWORD bfOffBits;
} BITMAPFILEHEADER;

typedef struct tagBITMAPINFOHEADER {
  DWORD biSize;
  LONG  biWidth;
  LONG  biHeight;
  WORD  biPlanes;
  WORD  biBitCount;
  DWORD biCompression;
  DWORD biSizeImage;
  LONG  biXPelsPerMeter;
  LONG  biYPelsPerMeter;
  DWORD biClrUsed;
  DWORD biClrImportant;
} BITMAPINFOHEADER;
*/

const (
	fileHeaderLen = 14
	infoHeaderLen = 40

	bitsPerPixel  = 24
	bytesPerPixel = bitsPerPixel / 8

	compressionRGB = 0
)

var signature = [2]byte{'B', 'M'}

type FileHeader struct {
	Signature  [2]byte
	FileSize   uint32
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32
}

type InfoHeader struct {
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ImportantColors uint32
}

// Header is the pair of fixed-size headers at the start of every bitmap file.
type Header struct {
	File FileHeader
	Info InfoHeader
}

// TopDown reports whether the rows are stored top to bottom, which the format
// signals with a negative height.
func (h Header) TopDown() bool {
	return h.Info.Height < 0
}

// Size returns the picture dimensions with the row order sign removed.
func (h Header) Size() (width, height int64) {
	height = int64(h.Info.Height)
	if height < 0 {
		height = -height
	}
	return int64(h.Info.Width), height
}

// DecodeHeader reads the file header and the info header from r without
// validating them.
func DecodeHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h.File); err != nil {
		return h, readError("file header", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Info); err != nil {
		return h, readError("info header", err)
	}
	return h, nil
}

func (h Header) validate() error {
	switch {
	case h.File.Signature != signature:
		return fmt.Errorf("%w: bad signature %q", ErrUnsupportedFormat, h.File.Signature[:])
	case h.Info.HeaderSize < infoHeaderLen:
		return fmt.Errorf("%w: info header size %d", ErrUnsupportedFormat, h.Info.HeaderSize)
	case h.Info.Compression != compressionRGB:
		return fmt.Errorf("%w: compression method %d", ErrUnsupportedFormat, h.Info.Compression)
	case h.Info.BitsPerPixel != bitsPerPixel:
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, h.Info.BitsPerPixel)
	case h.Info.Width < 0:
		return fmt.Errorf("%w: negative width %d", ErrUnsupportedFormat, h.Info.Width)
	case int64(h.File.DataOffset) < fileHeaderLen+int64(h.Info.HeaderSize):
		return fmt.Errorf("%w: pixel data offset %d overlaps headers", ErrUnsupportedFormat, h.File.DataOffset)
	}
	return nil
}

// layout returns the padded row stride and the pixel buffer size for the
// header, refusing anything that would not fit in MaxPixelBytes.
func (h Header) layout() (stride, size int, err error) {
	width, height := h.Size()
	if height > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: height %d", ErrUnsupportedFormat, h.Info.Height)
	}

	rowBytes := (width*bytesPerPixel + 3) / 4 * 4
	if rowBytes > MaxPixelBytes {
		return 0, 0, fmt.Errorf("%w: row stride %d for width %d", ErrUnsupportedFormat, rowBytes, width)
	}
	if height > 0 && rowBytes > MaxPixelBytes/height {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds %d pixel bytes", ErrUnsupportedFormat, width, height, MaxPixelBytes)
	}

	return int(rowBytes), int(rowBytes * height), nil
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("could not read %s: %w", what, ErrTruncated)
	}
	return fmt.Errorf("could not read %s: %w: %w", what, ErrIO, err)
}
