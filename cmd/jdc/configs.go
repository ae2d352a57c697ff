package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dhawalhost/jsoncache"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Data    string `cli:"name=d aliases=data desc='JSON or YAML document merged into the cache'"`
	Config  string `cli:"name=c aliases=config desc='YAML file with cache options'"`
	Verbose bool   `cli:"name=v desc='log cache diagnostics to stderr'"`

	Sets     []setArg
	Matches  []matchArg
	Reserved []string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

type setArg struct {
	Path  string
	Value *jsoncache.Node
}

type matchArg struct {
	Source  string `yaml:"source"`
	Pattern string `yaml:"pattern"`
}

// fileConfig is the layout of the -c file.
//
//	reservedNames: [secret]
//	chunkSize: 65536
//	matches:
//	- source: /users/42
//	  pattern: ^/users/(?P<user.id>\d+)$
type fileConfig struct {
	jsoncache.Options `yaml:",inline"`

	Matches []matchArg `yaml:"matches"`
}

type RenderConfig struct {
	*MainConfig
	Strict bool `cli:"name=strict desc='fail when a placeholder is left unreplaced'"`
	Render *cli.Command
}

type GetConfig struct {
	*MainConfig
	Double bool `cli:"name=dd aliases=double desc='print the {$$path} form'"`
	Pretty bool `cli:"name=p aliases=pretty desc='print the value as indented JSON'"`
	Get    *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Pretty bool `cli:"name=p aliases=pretty desc='print the whole document as indented JSON'"`
	Color  bool `cli:"name=color desc='color paths'"`
	Dump   *cli.Command
}

func (cfg *MainConfig) setOpt(_ *cli.Context, a string) (any, error) {
	path, val, ok := strings.Cut(a, "=")
	if !ok {
		return nil, fmt.Errorf("%w: argument %q expected path=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return nil, fmt.Errorf("%w: value for %q: %w", cli.ErrUsage, path, err)
	}
	n, err := jsoncache.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%w: value for %q: %w", cli.ErrUsage, path, err)
	}
	cfg.Sets = append(cfg.Sets, setArg{Path: path, Value: n})
	return n, nil
}

func (cfg *MainConfig) matchOpt(_ *cli.Context, a string) (any, error) {
	src, pat, ok := strings.Cut(a, "=")
	if !ok || pat == "" {
		return nil, fmt.Errorf("%w: argument %q expected source=regex", cli.ErrUsage, a)
	}
	cfg.Matches = append(cfg.Matches, matchArg{Source: src, Pattern: pat})
	return pat, nil
}

func (cfg *MainConfig) reserveOpt(_ *cli.Context, a string) (any, error) {
	cfg.Reserved = append(cfg.Reserved, a)
	return a, nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) options() (jsoncache.Options, []matchArg, error) {
	fc := fileConfig{Options: jsoncache.DefaultOptions}
	if cfg.Config != "" {
		data, err := os.ReadFile(cfg.Config)
		if err != nil {
			return fc.Options, nil, fmt.Errorf("could not read config %q: %w", cfg.Config, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fc.Options, nil, fmt.Errorf("error decoding config %q: %w", cfg.Config, err)
		}
	}
	opts := fc.Options
	opts.ReservedNames = append(opts.ReservedNames, cfg.Reserved...)
	opts.Logger = newLogger(os.Stderr, cfg.Verbose)
	return opts, append(fc.Matches, cfg.Matches...), nil
}

// load builds the cache: the -d document first, then -e values in order,
// then regex captures from the config file and from -m.
func (cfg *MainConfig) load() (*jsoncache.DataCache, error) {
	opts, matches, err := cfg.options()
	if err != nil {
		return nil, err
	}
	c := jsoncache.New(opts)
	if cfg.Data != "" {
		doc, err := readDocument(cfg.Data)
		if err != nil {
			return nil, err
		}
		c.Merge(doc)
	}
	for _, s := range cfg.Sets {
		c.Insert(s.Path, s.Value)
	}
	for _, m := range matches {
		matched, err := c.MatchRegex(m.Pattern, m.Source)
		if err != nil {
			return nil, fmt.Errorf("error matching %q: %w", m.Source, err)
		}
		if !matched {
			opts.Logger.Warn("regex did not match", "pattern", m.Pattern, "source", m.Source)
		}
	}
	return c, nil
}

// readDocument reads JSON, falling back to YAML.
func readDocument(file string) (*jsoncache.Node, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	doc, err := jsoncache.Parse(data)
	if err == nil {
		return doc, nil
	}
	j, yerr := yaml.YAMLToJSON(data)
	if yerr != nil {
		return nil, fmt.Errorf("error decoding %q: %w", file, err)
	}
	doc, err = jsoncache.Parse(j)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", file, err)
	}
	return doc, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func useColor(w io.Writer, forced bool) bool {
	if forced {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
