package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/lox/cli/cmd"
)

// yamlExt is the file extension of the YAML configuration file written by the
// init command.
const yamlExt = ".yaml"

// ErrConfig indicates a configuration file could not be decoded.
var ErrConfig = cmd.NewError("invalid configuration")

// resolve is a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Nested mappings are flattened by joining keys with a hyphen, so the
// document
//
//	log:
//	  level: debug
//	  pretty: false
//	path: [./lib, ./vendor]
//
// is applied to Kong flags as
//
//	--log-level=debug --no-log-pretty --path=./lib --path=./vendor
//
// Keys may use underscores in place of hyphens. Command-line flags override
// config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened YAML documents.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found, let Kong use defaults.
	return nil, nil
}

// flatten stores the leaves of m under hyphen-joined keys. Underscores in
// keys at any depth are normalized to hyphens.
func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := value.(type) {
		case map[string]any:
			c.flatten(key, v)
		case nil:
		default:
			c[key] = scalar(v)
		}
	}
}

// scalar converts a decoded YAML value into the form Kong's mappers expect.
// Kong parses numbers from strings.
func scalar(value any) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = scalar(elem)
		}

		return out
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string, bool:
		return v
	default:
		return fmt.Sprint(v)
	}
}
