package version

import (
	"context"

	"github.com/rootnet-dev/forkoff/lib/git"
)

// GitTagSource lists the tags of a local working copy of the node sources.
type GitTagSource struct {
	Repo git.Repo
}

func (s GitTagSource) Tags(ctx context.Context) ([]string, error) {
	return s.Repo.Tags(ctx)
}
