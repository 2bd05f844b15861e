// Package render composites every bitmap of a folder onto a checkerboard and
// saves the results.
package render

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"bmpview/bitmap"
	"bmpview/composite"
	"bmpview/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan   string `help:"Source folder to scan for .bmp files" default:"."`
	Dest   string `help:"Destination folder for composited pictures. Relative to scan dir if not absolute." default:"rendered"`
	Width  int    `help:"Surface width, defaults to the picture width"`
	Height int    `help:"Surface height, defaults to the picture height"`
	Format string `help:"Output format" enum:"png,bmp,tiff" default:"png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid surface width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid surface height: %d", c.Height)
	}

	return nil
}

func (c *CLICmd) Run(comp *composite.Compositor, pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, skippedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".bmp") {
			continue
		}

		pool.Do(func() {
			filePath := filepath.Join(c.Scan, file.Name())
			logger := slog.Default().With("file", filePath)

			img, err := bitmap.DecodeFile(filePath)
			if err != nil {
				errCount.Add(1)
				logger.Error("could not decode image", "error", err)
				return
			}

			surface := c.surface(img)
			if surface.Rect.Empty() {
				skippedCount.Add(1)
				logger.Debug("skipped empty image", "width", img.Width, "height", img.Height)
				return
			}
			comp.Render(surface, img, img.Background, surface.Bounds())

			if err = save(surface, c.Format, c.Dest, file.Name()); err != nil {
				errCount.Add(1)
				logger.Error("could not save image", "dir", c.Dest, "error", err)
				return
			}
			logger.Debug("rendered", "width", surface.Rect.Dx(), "height", surface.Rect.Dy())
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed, skipped := processedCount.Load(), skippedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "skipped", skipped, "errors", errors,
		"total", processed+skipped+errors, "workers", pool.Size())

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) surface(img *bitmap.Image) *image.RGBA {
	width, height := c.Width, c.Height
	if width == 0 {
		width = img.Width
	}
	if height == 0 {
		height = img.Height
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}
