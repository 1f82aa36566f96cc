package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"github.com/rootnet-dev/forkoff/build"
)

var log = logging.Logger("forkoff")

func main() {
	logging.SetLogLevel("*", "INFO")

	local := []*cli.Command{
		forkCmd,
		versionCmd,
		metadataCmd,
		populateCmd,
	}

	app := &cli.App{
		Name:     "forkoff",
		Usage:    "Fork a live chain's state into a dev chain specification",
		Version:  build.UserVersion(),
		Commands: local,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"FORKOFF_CONFIG"},
				Value:   "./config.yaml",
				Usage:   "run configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
			},
		},
		Before: func(cctx *cli.Context) error {
			return logging.SetLogLevel("*", cctx.String("log-level"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
	}
}

// reqContext returns a context cancelled on SIGTERM/SIGINT, so a long scrape
// can be aborted cleanly. The returned cancel func stops signal delivery and
// releases the watcher goroutine; callers defer it.
func reqContext(cctx *cli.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
