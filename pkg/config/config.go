// Package config resolves the server settings from the command line, the
// environment, a dotenv file and any extra sources the caller adds.
//
// Sources are consulted in order and the first one that has a value wins,
// independently for each parameter. The result is resolved once and never
// changes afterwards.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/pflag"
)

// Param describes one configuration parameter.
type Param struct {
	Name     string
	Flag     string
	Env      string
	Usage    string
	Required bool
	Type     ParamType
	Default  any
}

// Spec is the ordered set of declared parameters.
type Spec []Param

// 企业微信群机器人 webhook 地址
var BotURL = Param{
	Name:  "bot_url",
	Flag:  "bot-url",
	Env:   "BOT_URL",
	Usage: "QiWei Bot URL",
	Type:  TypeString,
}

var DefaultSpec = Spec{BotURL}

// Config is the resolved, read-only configuration. A Config built as a
// literal is read against DefaultSpec.
type Config struct {
	BotURL string

	values map[string]any
}

// Get returns the value of a declared parameter, or nil when it resolved to
// no value and has no default.
func (c *Config) Get(name string) (any, error) {
	if c.values != nil {
		v, ok := c.values[name]
		if !ok {
			return nil, &Error{Kind: UnknownParameter, Param: name}
		}
		return v, nil
	}
	for _, p := range DefaultSpec {
		if p.Name != name {
			continue
		}
		if p.Name == BotURL.Name && c.BotURL != "" {
			return c.BotURL, nil
		}
		return p.Default, nil
	}
	return nil, &Error{Kind: UnknownParameter, Param: name}
}

// Resolver sources are ordered highest precedence first.
type Resolver struct {
	spec    Spec
	sources []Source

	once sync.Once
	cfg  *Config
	err  error
}

func NewResolver(spec Spec, sources ...Source) *Resolver {
	return &Resolver{spec: spec, sources: sources}
}

func (r *Resolver) Resolve() (*Config, error) {
	r.once.Do(func() {
		r.cfg, r.err = r.resolve()
	})
	return r.cfg, r.err
}

func (r *Resolver) resolve() (*Config, error) {
	values := make(map[string]any, len(r.spec))
	for _, p := range r.spec {
		raw, found := r.first(p)
		if !found {
			if p.Required {
				return nil, &Error{Kind: MissingRequired, Param: p.Name}
			}
			values[p.Name] = p.Default
			continue
		}
		v, err := coerce(p, raw)
		if err != nil {
			return nil, err
		}
		values[p.Name] = v
	}

	cfg := &Config{values: values}
	if s, ok := values[BotURL.Name].(string); ok {
		cfg.BotURL = s
	}
	return cfg, nil
}

func (r *Resolver) first(p Param) (string, bool) {
	for _, src := range r.sources {
		if v, ok := src.Lookup(p); ok {
			return v, true
		}
	}
	return "", false
}

type LoadOptions struct {
	// Flags must already be parsed and have DefaultSpec's flags registered.
	// When nil, Args (or os.Args[1:] if Args is nil too) are parsed into a
	// fresh flag set.
	Flags *pflag.FlagSet
	Args  []string
	// DotenvPath defaults to ".env".
	DotenvPath string
	// Extra sources are consulted after the dotenv file.
	Extra []Source
}

// Load resolves DefaultSpec from flags, the environment, a dotenv file and
// any extra sources, in that order.
func Load(opts LoadOptions) (*Config, error) {
	fs := opts.Flags
	if fs == nil {
		args := opts.Args
		if args == nil {
			args = os.Args[1:]
		}
		fs = NewFlagSet(os.Args[0])
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
	}
	path := opts.DotenvPath
	if path == "" {
		path = ".env"
	}
	dotenv, err := LoadDotenv(path)
	if err != nil {
		return nil, err
	}

	sources := []Source{NewFlagSource(fs), EnvSource{}, dotenv}
	sources = append(sources, opts.Extra...)
	return NewResolver(DefaultSpec, sources...).Resolve()
}

// NewFlagSet returns a flag set with DefaultSpec registered that ignores
// flags it does not know about.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	RegisterFlags(fs, DefaultSpec)
	return fs
}
