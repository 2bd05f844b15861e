// Package inspect prints what the decoder sees in a bitmap file.
package inspect

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"bmpview/bitmap"

	"github.com/alecthomas/kong"
	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

type CLICmd struct {
	File string `arg:"" help:"Bitmap file to inspect" type:"existingfile"`
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	return Describe(kctx.Stdout, c.File)
}

// Describe writes the headers and derived colors of the bitmap at path to w.
func Describe(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w: %w", path, bitmap.ErrIO, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close bitmap", "file", path, "error", closeErr)
		}
	}()

	h, err := bitmap.DecodeHeader(f)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", path, err)
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("could not rewind %q: %w: %w", path, bitmap.ErrIO, err)
	}
	img, err := bitmap.Decode(f)
	if err != nil {
		return fmt.Errorf("could not decode %q: %w", path, err)
	}

	order := "bottom-up"
	if h.TopDown() {
		order = "top-down"
	}

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", path)
	fmt.Fprintf(tw, "Signature:\t%s\n", h.File.Signature[:])
	fmt.Fprintf(tw, "File size:\t%d bytes\n", h.File.FileSize)
	fmt.Fprintf(tw, "Data offset:\t%d\n", h.File.DataOffset)
	fmt.Fprintf(tw, "Header size:\t%d\n", h.Info.HeaderSize)
	fmt.Fprintf(tw, "Dimensions:\t%d x %d\n", img.Width, img.Height)
	fmt.Fprintf(tw, "Row order:\t%s\n", order)
	fmt.Fprintf(tw, "Bits per pixel:\t%d\n", h.Info.BitsPerPixel)
	fmt.Fprintf(tw, "Compression:\t%d\n", h.Info.Compression)
	fmt.Fprintf(tw, "Stride:\t%d\n", img.Stride)
	fmt.Fprintf(tw, "Pixel bytes:\t%d\n", len(img.Pix))
	fmt.Fprintf(tw, "Background:\t%s\n", hex(img.Background))
	if !img.Empty() {
		fmt.Fprintf(tw, "Dominant:\t%s\n", hex(dominantcolor.Find(img)))
	}

	return tw.Flush()
}

func hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
