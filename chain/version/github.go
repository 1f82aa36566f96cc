package version

import (
	"context"

	"github.com/google/go-github/v66/github"
	"golang.org/x/xerrors"
)

// GitHubTagSource lists a repository's tags through the GitHub API, for runs
// without a local clone of the node sources.
type GitHubTagSource struct {
	Owner string
	Repo  string

	client *github.Client
}

func NewGitHubTagSource(owner, repo string) *GitHubTagSource {
	return &GitHubTagSource{
		Owner:  owner,
		Repo:   repo,
		client: github.NewClient(nil),
	}
}

func (s *GitHubTagSource) Tags(ctx context.Context) ([]string, error) {
	var tags []string

	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := s.client.Repositories.ListTags(ctx, s.Owner, s.Repo, opts)
		if err != nil {
			return nil, xerrors.Errorf("listing tags of %s/%s: %w", s.Owner, s.Repo, err)
		}
		for _, t := range page {
			tags = append(tags, t.GetName())
		}
		if resp.NextPage == 0 {
			return tags, nil
		}
		opts.Page = resp.NextPage
	}
}
