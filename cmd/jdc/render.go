package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/dhawalhost/jsoncache"
	"github.com/scott-cotton/cli"
)

var leftoverPlaceholder = regexp.MustCompile(`\{\$\$?[^{}\s]*\}`)

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	c, err := cfg.load()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		if err := renderFile(cfg, c, cc.Out, cc.In, file); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(cfg *RenderConfig, c *jsoncache.DataCache, w io.Writer, stdin io.Reader, file string) error {
	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	if !cfg.Strict {
		if err := c.ReplaceWithCache(r, w); err != nil {
			return fmt.Errorf("error rendering %s: %w", file, err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := c.ReplaceWithCache(r, &buf); err != nil {
		return fmt.Errorf("error rendering %s: %w", file, err)
	}
	if m := leftoverPlaceholder.Find(buf.Bytes()); m != nil {
		return fmt.Errorf("%s: %s has no value in the cache", file, m)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("error writing %s: %w", file, err)
	}
	return nil
}
