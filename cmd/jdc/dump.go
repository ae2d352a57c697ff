package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhawalhost/jsoncache"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: dump takes no arguments", cli.ErrUsage)
	}
	c, err := cfg.load()
	if err != nil {
		return err
	}
	if cfg.Pretty {
		_, err := io.WriteString(cc.Out, c.Pretty(nil))
		return err
	}
	return dumpPaths(cc.Out, c.AsStringMap(), useColor(cc.Out, cfg.Color))
}

func dumpPaths(w io.Writer, m map[string]string, colored bool) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pathColor := color.New(color.FgCyan)
	sepColor := color.RGB(255, 0, 196)
	if colored {
		pathColor.EnableColor()
		sepColor.EnableColor()
	} else {
		pathColor.DisableColor()
		sepColor.DisableColor()
	}
	for _, k := range keys {
		_, err := fmt.Fprintf(w, "%s%s%s\n", pathColor.Sprint(jsoncache.Placeholder(k)), sepColor.Sprint(" = "), m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
