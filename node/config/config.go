// Package config holds the YAML run configuration for forkoff.
package config

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Endpoint is the ws:// or http:// RPC URL of the source node.
	Endpoint string `yaml:"endpoint"`

	// At pins the block to fork at; empty means the head at connect time.
	At string `yaml:"at,omitempty"`

	// TagSwitch checks out the resolved node version tag in RepoDir,
	// stashing uncommitted changes first.
	TagSwitch bool `yaml:"tag_switch"`

	// RepoDir is the local working copy of the node sources used as the
	// version-tag source (and checkout target). Ignored when GitHubRepo is
	// set.
	RepoDir string `yaml:"repo_dir,omitempty"`

	// GitHubRepo ("owner/name") lists version tags through the GitHub API
	// instead of a local clone.
	GitHubRepo string `yaml:"github_repo,omitempty"`

	// Output is the artifact directory (fork.json, raw_storage.json).
	Output string `yaml:"output"`

	// BaseSpec is the base chain specification to populate; empty means
	// <output>/fork.json, which is then rewritten in place.
	BaseSpec string `yaml:"base_spec,omitempty"`

	// ModulesFile is a pre-fetched module metadata list; empty means the
	// list is fetched from the node.
	ModulesFile string `yaml:"modules_file,omitempty"`
}

func Default() *Config {
	return &Config{
		Endpoint: "ws://127.0.0.1:9944",
		Output:   "./output",
	}
}

// FromFile loads the configuration at path over the defaults.
func FromFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, xerrors.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) expand() error {
	for _, p := range []*string{&c.Output, &c.BaseSpec, &c.ModulesFile, &c.RepoDir} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return xerrors.Errorf("expanding path %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return xerrors.New("endpoint must be set")
	}
	if c.Output == "" {
		return xerrors.New("output directory must be set")
	}
	return nil
}

// ForkSpecPath is the final chain specification artifact.
func (c *Config) ForkSpecPath() string {
	return filepath.Join(c.Output, "fork.json")
}

// RawStoragePath is the intermediate raw storage dump artifact.
func (c *Config) RawStoragePath() string {
	return filepath.Join(c.Output, "raw_storage.json")
}

// BaseSpecPath is the spec used as the migration base.
func (c *Config) BaseSpecPath() string {
	if c.BaseSpec != "" {
		return c.BaseSpec
	}
	return c.ForkSpecPath()
}
