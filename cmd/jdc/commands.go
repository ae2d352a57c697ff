package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "e",
			Description: "insert a YAML or JSON value at a dotted path",
			Type:        cli.NamedFuncOpt(cfg.setOpt, "(path=val)"),
		},
		&cli.Opt{
			Name:        "m",
			Aliases:     []string{"match"},
			Description: "capture named regex groups from source into the cache",
			Type:        cli.NamedFuncOpt(cfg.matchOpt, "(source=regex)"),
		},
		&cli.Opt{
			Name:        "r",
			Aliases:     []string{"reserve"},
			Description: "path regex captures may not write to",
			Type:        cli.NamedFuncOpt(cfg.reserveOpt, "(name)"),
		},
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "jdc").
		WithSynopsis("jdc [opts] command [opts]").
		WithDescription("jdc fills {$path} and {$$path} placeholders from a JSON document.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jdcMain(cfg, cc, args)
		}).
		WithSubs(
			RenderCommand(cfg),
			GetCommand(cfg),
			DumpCommand(cfg))
}

func RenderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenderConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Render, "render").
		WithAliases("r", "re").
		WithSynopsis("render [opts] [files]").
		WithDescription("replace placeholders in files (or stdin) with cached values").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return render(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [opts] <path> [paths]").
		WithDescription("print the text a placeholder for each path expands to").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [opts]").
		WithDescription("list every cached path with its value, or print the document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}
