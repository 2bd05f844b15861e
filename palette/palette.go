// Package palette resolves the two checkerboard colors drawn behind a
// composited picture.
package palette

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"strings"
)

var builtin = map[string]color.Palette{
	"classic":  {color.RGBA{230, 230, 230, 0xff}, color.RGBA{200, 200, 200, 0xff}},
	"dark":     {color.RGBA{64, 64, 64, 0xff}, color.RGBA{40, 40, 40, 0xff}},
	"contrast": {color.RGBA{0xff, 0xff, 0xff, 0xff}, color.RGBA{0, 0, 0, 0xff}},
	"magenta":  {color.RGBA{0xff, 0, 0xff, 0xff}, color.RGBA{0x80, 0, 0x80, 0xff}},
}

// Default is the name of the palette used when none is configured.
const Default = "classic"

// Names lists the built-in palette names in order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadPalette returns the checkerboard colors for name, which is either a
// built-in palette, a comma separated list of hex colors, or the path of a
// RIFF PAL file. At least two colors are always returned.
func LoadPalette(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return slices.Clone(pal), nil
	}

	if strings.HasPrefix(name, "#") {
		var pal color.Palette
		for field := range strings.SplitSeq(name, ",") {
			c, err := ParseHex(strings.TrimSpace(field))
			if err != nil {
				return nil, err
			}
			pal = append(pal, c)
		}
		return checkSize(name, pal)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-in: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
	}

	var pal color.Palette
	for _, p := range pals {
		pal = append(pal, p...)
	}
	return checkSize(name, pal)
}

func checkSize(name string, pal color.Palette) (color.Palette, error) {
	if len(pal) < 2 {
		return nil, fmt.Errorf("palette %q has %d colors, need 2", name, len(pal))
	}
	return pal, nil
}

// ParseHex reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return c, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return c, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xff
	case 5:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return c, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 4 {
			return c, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return c, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return c, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.A = 0xff
	case 9:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return c, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 4 {
			return c, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return c, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	return c, nil
}
