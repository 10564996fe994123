package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"

	"github.com/ardnew/lox/lang"
)

// Define is a global variable given on the command line as NAME=EXPR.
//
// EXPR is an expr-lang expression evaluated before any script runs. It can
// refer to the variables defined before it by name and to the process
// environment through the map env, e.g.
//
//	--define home=env.HOME --define greeting='"hi from " + home'
type Define struct {
	Name   string
	Source string
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Define) UnmarshalText(text []byte) error {
	name, source, ok := strings.Cut(string(text), "=")
	if !ok {
		return ErrDefine.With(slog.String("define", string(text))).
			Wrap(fmt.Errorf("want NAME=EXPR"))
	}

	name = strings.TrimSpace(name)
	if !isIdentifier(name) {
		return ErrDefine.With(slog.String("name", name)).
			Wrap(fmt.Errorf("not a valid variable name"))
	}

	d.Name, d.Source = name, strings.TrimSpace(source)

	return nil
}

func (d Define) String() string { return d.Name + "=" + d.Source }

// isIdentifier reports whether name scans as a single non-reserved
// identifier.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	if _, reserved := lang.Keyword(name); reserved {
		return false
	}

	for i, r := range name {
		alpha := r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
		if !alpha && (i == 0 || !unicode.IsDigit(r) || r > unicode.MaxASCII) {
			return false
		}
	}

	return true
}

// evalDefines evaluates defs in order and returns the resulting globals.
func evalDefines(defs []Define) (map[string]lang.Value, error) {
	globals := make(map[string]lang.Value, len(defs))
	env := map[string]any{"env": environ()}

	for _, d := range defs {
		program, err := expr.Compile(d.Source, expr.Env(env))
		if err != nil {
			return nil, ErrDefine.With(slog.String("name", d.Name)).Wrap(err)
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, ErrDefine.With(slog.String("name", d.Name)).Wrap(err)
		}

		v, err := toValue(out)
		if err != nil {
			return nil, ErrDefine.With(slog.String("name", d.Name)).Wrap(err)
		}

		globals[d.Name] = v
		env[d.Name] = lang.Native(v)
	}

	return globals, nil
}

// toValue converts the result of an expr-lang program to a lox value.
func toValue(v any) (lang.Value, error) {
	switch v := v.(type) {
	case nil:
		return lang.Nil{}, nil
	case bool:
		return lang.Bool(v), nil
	case string:
		return lang.String(v), nil
	case float64:
		return lang.Double(v), nil
	case float32:
		return lang.Double(v), nil
	case int:
		return lang.Double(v), nil
	case int64:
		return lang.Double(v), nil
	case int32:
		return lang.Double(v), nil
	case uint:
		return lang.Double(v), nil
	case uint64:
		return lang.Double(v), nil
	default:
		return nil, fmt.Errorf("unsupported result type %T", v)
	}
}

// environ returns the process environment as a map.
func environ() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}
