package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api/client"
	"github.com/rootnet-dev/forkoff/chain/version"
	"github.com/rootnet-dev/forkoff/lib/git"
	"github.com/rootnet-dev/forkoff/node/config"
)

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "Resolve the source-control tag of the node build that produced the chain state",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "switch",
			Usage: "check out the resolved tag (stashing uncommitted changes first)",
		},
	},
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

		at := cfg.At
		if at == "" {
			if at, err = node.GetBlockHash(ctx); err != nil {
				return xerrors.Errorf("querying head block: %w", err)
			}
		}

		repo := git.Repo{Dir: cfg.RepoDir}
		var tags version.TagSource = version.GitTagSource{Repo: repo}
		if cfg.GitHubRepo != "" {
			owner, name, ok := strings.Cut(cfg.GitHubRepo, "/")
			if !ok {
				return xerrors.Errorf("github_repo must be owner/name, got %q", cfg.GitHubRepo)
			}
			tags = version.NewGitHubTagSource(owner, name)
		}

		tag, err := version.Resolve(ctx, node, at, tags)
		if err != nil {
			return err
		}
		fmt.Println(tag)

		if cctx.Bool("switch") || cfg.TagSwitch {
			if cfg.GitHubRepo != "" {
				return xerrors.New("tag switch needs a local clone (repo_dir), not github_repo")
			}
			return tagSwitch(ctx, repo, tag)
		}
		return nil
	},
}

func tagSwitch(ctx context.Context, repo git.Repo, tag string) error {
	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	dirty, err := repo.IsDirty(ctx)
	if err != nil {
		return err
	}
	if dirty {
		if err := repo.Stash(ctx); err != nil {
			return err
		}
		log.Info("stashed uncommitted changes")
	}

	if err := repo.Checkout(ctx, tag); err != nil {
		return err
	}

	log.Infow("checked out node sources", "tag", tag, "previous", branch)
	return nil
}
