package main

import (
	"fmt"

	"github.com/dhawalhost/jsoncache"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires at least one path", cli.ErrUsage)
	}
	c, err := cfg.load()
	if err != nil {
		return err
	}
	for _, path := range args {
		if cfg.Pretty {
			n, ok := c.Get(path)
			if !ok {
				return fmt.Errorf("%w: %q", jsoncache.ErrPathNotFound, path)
			}
			if _, err := cc.Out.Write(jsoncache.Pretty(n.AppendJSON(nil))); err != nil {
				return fmt.Errorf("error writing %q: %w", path, err)
			}
			continue
		}
		b, err := c.Raw(path, cfg.Double)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cc.Out, "%s\n", b); err != nil {
			return fmt.Errorf("error writing %q: %w", path, err)
		}
	}
	return nil
}
