package gui

import (
	"fmt"

	"bmpview/composite"
	"bmpview/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/alecthomas/kong"
)

type CLICmd struct {
	File   string `arg:"" optional:"" help:"Bitmap to show on startup" type:"existingfile"`
	Width  int    `help:"Initial window width" default:"600"`
	Height int    `help:"Initial window height" default:"600"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid window size: %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c *CLICmd) Run(comp *composite.Compositor) error {
	state := viewer.NewState(comp)
	if c.File != "" {
		if err := state.Load(c.File); err != nil {
			return fmt.Errorf("could not open %q: %w", c.File, err)
		}
	}

	size := fyne.NewSize(float32(c.Width), float32(c.Height))
	NewWindow(app.NewWithID("bmpview"), state, size).ShowAndRun()
	return nil
}
