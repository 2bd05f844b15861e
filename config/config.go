// Package config reads YAML configuration files as kong flag defaults.
//
// Top-level keys match global flags, and a key named after a subcommand holds
// that subcommand's flags:
//
//	tile: 20
//	palette: dark
//	render:
//	  format: bmp
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v2"
)

// Paths are searched in order when no --config flag is given.
var Paths = []string{"~/.config/bmpview/config.yaml", "./bmpview.yaml"}

// Loader is a kong.ConfigurationLoader.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]interface{}{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	slog.Debug("configuration loaded", "keys", len(values))

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		v, ok := lookup(values, parent, flag.Name)
		if !ok {
			return nil, nil
		}
		return toFlagValue(v)
	}), nil
}

func lookup(values map[string]interface{}, parent *kong.Path, name string) (interface{}, bool) {
	keys := []string{name, strings.ReplaceAll(name, "-", "_")}

	if parent != nil && parent.Command != nil {
		if section, ok := values[parent.Command.Name].(map[interface{}]interface{}); ok {
			for _, k := range keys {
				if v, ok := section[k]; ok {
					return v, true
				}
			}
		}
	}

	for _, k := range keys {
		if v, ok := values[k]; ok {
			if _, isSection := v.(map[interface{}]interface{}); !isSection {
				return v, true
			}
		}
	}
	return nil, false
}

func toFlagValue(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ","), nil
	case map[interface{}]interface{}:
		return nil, fmt.Errorf("unexpected mapping value: %v", v)
	default:
		return fmt.Sprint(v), nil
	}
}
