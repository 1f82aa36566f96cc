package main

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
	"github.com/rootnet-dev/forkoff/chain/allowlist"
	"github.com/rootnet-dev/forkoff/chain/scrape"
	"github.com/rootnet-dev/forkoff/chain/spec"
	"github.com/rootnet-dev/forkoff/node/config"
)

var populateCmd = &cli.Command{
	Name:  "populate",
	Usage: "Merge previously captured state into the base spec, without touching the node",
	Description: `Populates the base chain specification offline, from either a raw storage
dump written by the fork command or the genesis.raw.top of another (support)
chain specification.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "dump",
			Usage: "raw storage dump to migrate from",
		},
		&cli.StringFlag{
			Name:  "support-spec",
			Usage: "chain specification to migrate from",
		},
		&cli.StringFlag{
			Name:     "modules",
			Usage:    "module metadata list for the allow-list",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output path (default: rewrite the base spec in place)",
		},
	},
	Action: func(cctx *cli.Context) error {
		cfg, err := config.FromFile(cctx.String("config"))
		if err != nil {
			return err
		}

		dumpPath, supportPath := cctx.String("dump"), cctx.String("support-spec")
		if (dumpPath == "") == (supportPath == "") {
			return xerrors.New("exactly one of --dump and --support-spec must be given")
		}

		var pairs []api.StorageChange
		if dumpPath != "" {
			if pairs, err = scrape.ReadDump(dumpPath); err != nil {
				return err
			}
		} else {
			support, err := spec.Load(supportPath)
			if err != nil {
				return err
			}
			for k, v := range support.Top() {
				v := v
				pairs = append(pairs, api.StorageChange{Key: k, Value: &v})
			}
		}

		modules, err := allowlist.LoadModules(cctx.String("modules"))
		if err != nil {
			return err
		}
		allow, err := allowlist.Build(modules)
		if err != nil {
			return err
		}

		base, err := spec.Load(cfg.BaseSpecPath())
		if err != nil {
			return err
		}
		if err := base.Merge(pairs, allow); err != nil {
			return err
		}

		out := cctx.String("out")
		if out == "" {
			out = cfg.BaseSpecPath()
		}
		if err := base.Write(out); err != nil {
			return err
		}

		color.Green("populated %s with %d candidate pairs", out, len(pairs))
		return nil
	},
}
