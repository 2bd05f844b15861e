package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"bmpview/composite"
	"bmpview/config"
	"bmpview/gui"
	"bmpview/inspect"
	"bmpview/palette"
	"bmpview/parallel"
	"bmpview/render"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config   kong.ConfigFlag `help:"YAML configuration file"`
	LogLevel slog.Level      `help:"Log level (debug, info, warn, error)" default:"info"`
	Tile     int             `help:"Checkerboard square size" default:"${tile}"`
	Palette  string          `help:"Checkerboard colors: built-in name, comma separated hex colors or RIFF PAL file" default:"${palette}"`
	Workers  int             `help:"Parallel workers for batch commands, GOMAXPROCS when < 1" default:"0"`

	View    gui.CLICmd     `cmd:"" default:"withargs" help:"Open the viewer window"`
	Render  render.CLICmd  `cmd:"" help:"Composite every bitmap of a folder onto a checkerboard"`
	Inspect inspect.CLICmd `cmd:"" help:"Print bitmap headers and derived colors"`
}

func (c *CLI) Validate(kctx *kong.Context) error {
	if c.Tile < 1 {
		return fmt.Errorf("invalid tile size: %d", c.Tile)
	}
	if _, err := palette.LoadPalette(c.Palette); err != nil {
		return err
	}
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bmpview"),
		kong.Description("Show 24-bit bitmaps over a checkerboard, keyed on their bottom-left color."),
		kong.UsageOnError(),
		kong.Vars{
			"tile":    strconv.Itoa(composite.DefaultTileSize),
			"palette": palette.Default,
		},
		kong.Configuration(config.Loader, config.Paths...),
		kong.BindToProvider(func() (*parallel.Pool, error) {
			return parallel.Start(cli.Workers), nil
		}),
	)

	slog.SetLogLoggerLevel(cli.LogLevel)
	slog.Debug("running", "command", kctx.Command(), "tile", cli.Tile, "palette", cli.Palette)

	pal, err := palette.LoadPalette(cli.Palette)
	kctx.FatalIfErrorf(err)
	comp, err := composite.New(cli.Tile, pal)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(comp))
}
