package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type testCLI struct {
	Tile    int    `default:"15"`
	Palette string `default:"classic"`
	Render  struct {
		Format  string   `default:"png"`
		Workers int      `default:"0"`
		Only    []string `name:"only"`
	} `cmd:""`
	Inspect struct{} `cmd:""`
}

func parse(t *testing.T, yaml string, args ...string) testCLI {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("could not write configuration: %v", err)
	}

	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(Loader, path))
	if err != nil {
		t.Fatalf("could not build parser: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("could not parse %v: %v", args, err)
	}
	return cli
}

const sample = `
tile: 20
palette: "#fff,#000"
render:
  format: bmp
  workers: 3
  only: [a.bmp, b.bmp]
`

func TestLoaderAppliesValues(t *testing.T) {
	cli := parse(t, sample, "render")

	if cli.Tile != 20 {
		t.Errorf("tile %d, want 20", cli.Tile)
	}
	if cli.Palette != "#fff,#000" {
		t.Errorf("palette %q", cli.Palette)
	}
	if cli.Render.Format != "bmp" || cli.Render.Workers != 3 {
		t.Errorf("render flags %+v", cli.Render)
	}
	if strings.Join(cli.Render.Only, " ") != "a.bmp b.bmp" {
		t.Errorf("only %v", cli.Render.Only)
	}
}

func TestLoaderFlagsWin(t *testing.T) {
	cli := parse(t, sample, "--tile=9", "render", "--format=tiff")

	if cli.Tile != 9 {
		t.Errorf("tile %d, want 9", cli.Tile)
	}
	if cli.Render.Format != "tiff" {
		t.Errorf("format %q, want tiff", cli.Render.Format)
	}
}

func TestLoaderEmptyFile(t *testing.T) {
	cli := parse(t, "", "inspect")

	if cli.Tile != 15 || cli.Palette != "classic" {
		t.Errorf("defaults not kept: %+v", cli)
	}
}

func TestLoaderRejectsBadYAML(t *testing.T) {
	if _, err := Loader(strings.NewReader("tile: [1, 2")); err == nil {
		t.Error("malformed YAML accepted")
	}
}
