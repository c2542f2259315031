package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Source is one place a parameter value can come from. Lookup reports
// whether the source has a value for p at all; an empty string still counts.
type Source interface {
	Name() string
	Lookup(p Param) (string, bool)
}

// RegisterFlags declares a string flag for every parameter in spec that has one.
func RegisterFlags(fs *pflag.FlagSet, spec Spec) {
	for _, p := range spec {
		if p.Flag == "" {
			continue
		}
		fs.String(p.Flag, "", p.Usage)
	}
}

// FlagSource only reports flags that were set on the command line.
type FlagSource struct {
	fs *pflag.FlagSet
}

func NewFlagSource(fs *pflag.FlagSet) *FlagSource {
	return &FlagSource{fs: fs}
}

func (s *FlagSource) Name() string { return "flags" }

func (s *FlagSource) Lookup(p Param) (string, bool) {
	if p.Flag == "" || s.fs == nil {
		return "", false
	}
	f := s.fs.Lookup(p.Flag)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

type EnvSource struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

func (s EnvSource) Name() string { return "env" }

func (s EnvSource) Lookup(p Param) (string, bool) {
	if p.Env == "" {
		return "", false
	}
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(p.Env)
}

// MapSource is keyed by environment variable name.
type MapSource struct {
	name   string
	values map[string]string
}

func NewMapSource(name string, values map[string]string) *MapSource {
	if values == nil {
		values = map[string]string{}
	}
	return &MapSource{name: name, values: values}
}

func (s *MapSource) Name() string { return s.name }

func (s *MapSource) Lookup(p Param) (string, bool) {
	if p.Env == "" {
		return "", false
	}
	v, ok := s.values[p.Env]
	return v, ok
}

// LoadDotenv reads a dotenv file into a MapSource. A missing file yields an
// empty source.
func LoadDotenv(path string) (*MapSource, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewMapSource("dotenv", nil), nil
		}
		return nil, fmt.Errorf("failed to read dotenv file %s: %w", path, err)
	}
	return NewMapSource("dotenv", values), nil
}
