package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api/client"
	"github.com/rootnet-dev/forkoff/node/config"
)

var metadataCmd = &cli.Command{
	Name:      "metadata",
	Usage:     "Fetch the node's module metadata list to a JSON file",
	ArgsUsage: "[output-file]",
	Action: func(cctx *cli.Context) error {
		ctx, done := reqContext(cctx)
		defer done()

		cfg, err := config.FromFile(cctx.String("config"))
		if err != nil {
			return err
		}

		out := cctx.Args().First()
		if out == "" {
			out = filepath.Join(cfg.Output, "modules.json")
		}

		node, closer, err := client.NewNodeRPC(ctx, cfg.Endpoint, nil)
		if err != nil {
			return xerrors.Errorf("connecting to %s: %w", cfg.Endpoint, err)
		}
		defer closer()

		modules, err := node.GetMetadataModules(ctx)
		if err != nil {
			return xerrors.Errorf("fetching module metadata: %w", err)
		}

		b, err := json.MarshalIndent(modules, "", "  ")
		if err != nil {
			return xerrors.Errorf("encoding module metadata: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return xerrors.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(out, b, 0o644); err != nil {
			return xerrors.Errorf("writing module metadata: %w", err)
		}

		log.Infow("module metadata written", "modules", len(modules), "file", out)
		return nil
	},
}
