// Package version resolves which build of the node software produced a state
// snapshot, by mapping the node's client and runtime versions onto a
// source-control tag.
package version

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/rootnet-dev/forkoff/api"
)

var log = logging.Logger("version")

// ErrNoMatchingTag means no known tag corresponds to the node's runtime
// version. There is no safe default to assume: resolution failure is fatal to
// the run.
var ErrNoMatchingTag = xerrors.New("no tag matches the node's runtime version")

// TagSource yields the set of known source-control tags.
type TagSource interface {
	Tags(ctx context.Context) ([]string, error)
}

// StaticTagSource serves a pre-fetched tag list.
type StaticTagSource []string

func (s StaticTagSource) Tags(context.Context) ([]string, error) {
	return s, nil
}

// Resolve determines the tag of the node build that produced the state at the
// given block. The candidate is v<client-major>.<runtime-spec-version>.0; if
// absent from the tag set, any tag whose second dot-segment equals the
// runtime spec version matches instead, tolerating client-version drift.
// Several such tags tie-break to the highest semantic version; tags that
// don't parse as semver lose to every tag that does.
func Resolve(ctx context.Context, node *api.NodeAPI, at string, tags TagSource) (string, error) {
	clientVersion, err := node.Version(ctx)
	if err != nil {
		return "", xerrors.Errorf("querying client version: %w", err)
	}
	major := strings.SplitN(clientVersion, ".", 2)[0]

	rt, err := node.GetRuntimeVersion(ctx, at)
	if err != nil {
		return "", xerrors.Errorf("querying runtime version: %w", err)
	}

	candidate := fmt.Sprintf("v%s.%d.0", major, rt.SpecVersion)
	log.Infow("resolving node version", "client", clientVersion, "runtime", rt.SpecVersion, "candidate", candidate)

	all, err := tags.Tags(ctx)
	if err != nil {
		return "", xerrors.Errorf("listing tags: %w", err)
	}

	for _, tag := range all {
		if tag == candidate {
			return candidate, nil
		}
	}

	if tag, ok := fallback(all, rt.SpecVersion); ok {
		log.Infow("candidate tag not found, matched by runtime version", "tag", tag)
		return tag, nil
	}

	return "", xerrors.Errorf("client %s runtime %d: %w", clientVersion, rt.SpecVersion, ErrNoMatchingTag)
}

// fallback selects among tags whose second dot-segment equals the runtime
// spec version.
func fallback(all []string, specVersion uint32) (string, bool) {
	want := strconv.FormatUint(uint64(specVersion), 10)

	var matches []string
	for _, tag := range all {
		parts := strings.Split(tag, ".")
		if len(parts) >= 2 && parts[1] == want {
			matches = append(matches, tag)
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	sort.Slice(matches, func(i, j int) bool {
		vi, erri := semver.NewVersion(matches[i])
		vj, errj := semver.NewVersion(matches[j])
		switch {
		case erri == nil && errj == nil:
			return vi.LessThan(vj)
		case erri == nil:
			return false // semver sorts above non-semver
		case errj == nil:
			return true
		default:
			return matches[i] < matches[j]
		}
	})

	return matches[len(matches)-1], true
}
