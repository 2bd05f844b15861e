// Package gui is the desktop front-end: one window, one button, one picture.
package gui

import (
	"image"
	"log/slog"

	"bmpview/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const title = "Image Loader"

var (
	buttonPos  = fyne.NewPos(20, 20)
	buttonSize = fyne.NewSize(120, 40)
)

type Window struct {
	state  *viewer.State
	win    fyne.Window
	raster *canvas.Raster
}

func NewWindow(app fyne.App, state *viewer.State, size fyne.Size) *Window {
	w := &Window{
		state: state,
		win:   app.NewWindow(title),
	}

	// The raster is regenerated at the window's pixel size on every resize
	// and refresh.
	w.raster = canvas.NewRaster(func(width, height int) image.Image {
		return state.Frame(width, height)
	})

	open := widget.NewButton("Open Image", w.Open)
	open.Resize(buttonSize)
	open.Move(buttonPos)

	w.win.SetContent(container.NewStack(w.raster, container.NewWithoutLayout(open)))
	w.win.Resize(size)
	return w
}

// Open shows a file dialog limited to .bmp files. Choosing a file that
// decodes replaces the picture; cancelling or a failed decode changes
// nothing.
func (w *Window) Open() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			slog.Error("file dialog failed", "error", err)
			return
		}
		if rc == nil {
			return
		}
		name := rc.URI().Path()
		defer func() {
			if closeErr := rc.Close(); closeErr != nil {
				slog.Error("could not close image", "file", name, "error", closeErr)
			}
		}()

		if err := w.state.LoadFrom(rc, name); err != nil {
			slog.Error("could not load image", "file", name, "error", err)
			return
		}
		w.raster.Refresh()
	}, w.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".bmp"}))
	d.Show()
}

// ShowAndRun blocks until the window is closed.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}
