package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
	"github.com/rootnet-dev/forkoff/api/client"
	"github.com/rootnet-dev/forkoff/chain/allowlist"
	"github.com/rootnet-dev/forkoff/chain/scrape"
	"github.com/rootnet-dev/forkoff/chain/spec"
	"github.com/rootnet-dev/forkoff/node/config"
)

var forkCmd = &cli.Command{
	Name:  "fork",
	Usage: "Scrape the source chain's state and populate the dev chain spec with it",
	Action: func(cctx *cli.Context) error {
		ctx, done := reqContext(cctx)
		defer done()

		cfg, err := config.FromFile(cctx.String("config"))
		if err != nil {
			return err
		}

		node, closer, err := client.NewNodeRPC(ctx, cfg.Endpoint, nil)
		if err != nil {
			return xerrors.Errorf("connecting to %s: %w", cfg.Endpoint, err)
		}
		defer closer()

		chainName, err := node.Chain(ctx)
		if err != nil {
			return xerrors.Errorf("querying chain name: %w", err)
		}

		at := cfg.At
		if at == "" {
			// Pin the head once so enumeration and fetch see the same state.
			if at, err = node.GetBlockHash(ctx); err != nil {
				return xerrors.Errorf("querying head block: %w", err)
			}
		}
		log.Infow("connected to remote chain", "endpoint", cfg.Endpoint, "chain", chainName, "at", at)

		if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
			return xerrors.Errorf("creating output directory: %w", err)
		}

		scraper := scrape.NewScraper(cfg.Endpoint)
		storageKeys, err := scraper.FetchKeys(ctx, at)
		if err != nil {
			return xerrors.Errorf("enumerating storage keys: %w", err)
		}

		pairs, err := scraper.FetchValues(ctx, at, storageKeys)
		if err != nil {
			return xerrors.Errorf("fetching storage values: %w", err)
		}
		if err := scrape.WriteDump(cfg.RawStoragePath(), pairs); err != nil {
			return err
		}

		var modules []api.ModuleMetadata
		if cfg.ModulesFile != "" {
			modules, err = allowlist.LoadModules(cfg.ModulesFile)
		} else {
			modules, err = node.GetMetadataModules(ctx)
		}
		if err != nil {
			return xerrors.Errorf("resolving module list: %w", err)
		}

		allow, err := allowlist.Build(modules)
		if err != nil {
			return err
		}

		base, err := spec.Load(cfg.BaseSpecPath())
		if err != nil {
			return err
		}
		base.SetForkName(chainName)
		if err := base.Merge(pairs, allow); err != nil {
			return err
		}
		if err := base.Write(cfg.ForkSpecPath()); err != nil {
			return err
		}

		color.Green("forked %s at %s: %d pairs scraped, spec written to %s",
			chainName, at, len(pairs), cfg.ForkSpecPath())
		return nil
	},
}
