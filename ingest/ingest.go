// Package ingest builds a dag.Dag from a local git repository, grounded
// on the teacher's stack.Load commit walk and its github_repo.go repo
// opener, minus everything that talks to a code-review backend.
package ingest

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/bitcomplete/revgraph/dag"
	"github.com/bitcomplete/revgraph/internal/cmdutil"
)

// defaultMaxCommits bounds how many commits a single FromRepository call
// will walk, mirroring the teacher's own notion of a default cutoff
// rather than walking an arbitrarily deep history every time.
const defaultMaxCommits = 20000

type refInfo struct {
	hash   plumbing.Hash
	name   string
	remote bool
}

// Options configures FromRepository.
type Options struct {
	// Path is the repository path to open; "." if empty.
	Path string
	// MaxCommits overrides defaultMaxCommits if positive.
	MaxCommits int
}

// Result is what FromRepository hands back: the raw commit facts it
// walked, and a Dag already built from them.
type Result struct {
	Commits []dag.CommitInfo
	Dag     *dag.Dag
}

// FromRepository opens a local repository and walks every commit
// reachable from HEAD and every local/remote branch ref, up to a commit
// cutoff. Each call walks from scratch; there is no incremental
// re-parsing (spec.md §1's non-goal for partial re-parsing is carried
// here too).
func FromRepository(ctx context.Context, opts Options) (*Result, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return FromOpenRepository(ctx, repo, opts)
}

// FromOpenRepository runs the same walk as FromRepository against a
// repository the caller has already opened, letting tests exercise the
// walk against an in-memory repository instead of one on disk.
func FromOpenRepository(ctx context.Context, repo *git.Repository, opts Options) (*Result, error) {
	deps := cmdutil.FromContext(ctx)
	maxCommits := opts.MaxCommits
	if maxCommits <= 0 {
		maxCommits = defaultMaxCommits
	}

	head, err := repo.Head()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	deps.DebugLog.Printf("HEAD is %v", head.Hash())

	refs, err := repo.References()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var branchRefs []refInfo
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		switch {
		case ref.Name().IsBranch():
			branchRefs = append(branchRefs, refInfo{
				hash: ref.Hash(),
				name: strings.TrimPrefix(ref.Name().String(), "refs/heads/"),
			})
		case ref.Name().IsRemote():
			branchRefs = append(branchRefs, refInfo{
				hash:   ref.Hash(),
				name:   strings.TrimPrefix(ref.Name().String(), "refs/remotes/"),
				remote: true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defaultBranchRemote := defaultRemoteRef(branchRefs)
	publicAncestors := map[plumbing.Hash]bool{}
	if defaultBranchRemote != nil {
		if err := markReachable(repo, defaultBranchRemote.hash, publicAncestors, maxCommits); err != nil {
			return nil, err
		}
	}

	bookmarksByHash := map[plumbing.Hash][]string{}
	remoteBookmarksByHash := map[plumbing.Hash][]string{}
	for _, r := range branchRefs {
		if r.remote {
			remoteBookmarksByHash[r.hash] = append(remoteBookmarksByHash[r.hash], r.name)
		} else {
			bookmarksByHash[r.hash] = append(bookmarksByHash[r.hash], r.name)
		}
	}

	startHashes := []plumbing.Hash{head.Hash()}
	for _, r := range branchRefs {
		startHashes = append(startHashes, r.hash)
	}

	visited := map[plumbing.Hash]bool{}
	var commits []dag.CommitInfo
	queue := startHashes
	for i := 0; i < len(queue) && len(commits) < maxCommits; i++ {
		h := queue[i]
		if visited[h] {
			continue
		}
		visited[h] = true

		commit, err := repo.CommitObject(h)
		if err != nil {
			deps.DebugLog.Printf("skipping %v: %v", h, err)
			continue
		}
		deps.DebugLog.Printf("processing commit %v", commit.Hash)

		phase := dag.Draft
		if publicAncestors[commit.Hash] {
			phase = dag.Public
		}

		commits = append(commits, dag.CommitInfo{
			Hash:            dag.Hash(commit.Hash.String()),
			Parents:         parentHashes(commit),
			Phase:           phase,
			IsDot:           commit.Hash == head.Hash(),
			Bookmarks:       bookmarksByHash[commit.Hash],
			RemoteBookmarks: remoteBookmarksByHash[commit.Hash],
			Date:            commit.Author.When,
		})

		queue = append(queue, commit.ParentHashes...)
	}

	d := dag.New().Add(commits)
	return &Result{Commits: commits, Dag: d}, nil
}

func parentHashes(commit *object.Commit) []dag.Hash {
	out := make([]dag.Hash, len(commit.ParentHashes))
	for i, h := range commit.ParentHashes {
		out[i] = dag.Hash(h.String())
	}
	return out
}

// defaultRemoteRef picks the remote-tracking ref for what looks like the
// default branch, preferring "origin/main" then "origin/master", falling
// back to the first remote ref seen.
func defaultRemoteRef(refs []refInfo) *refInfo {
	var fallback *refInfo
	for i := range refs {
		r := refs[i]
		if !r.remote {
			continue
		}
		if fallback == nil {
			fallback = &refs[i]
		}
		if r.name == "origin/main" || r.name == "origin/master" {
			return &refs[i]
		}
	}
	return fallback
}

// markReachable walks parents from start, marking every reached commit
// public, up to a cutoff shared with the caller's overall commit budget.
func markReachable(repo *git.Repository, start plumbing.Hash, seen map[plumbing.Hash]bool, maxCommits int) error {
	queue := []plumbing.Hash{start}
	visited := map[plumbing.Hash]bool{}
	for i := 0; i < len(queue) && len(visited) < maxCommits; i++ {
		h := queue[i]
		if visited[h] {
			continue
		}
		visited[h] = true
		seen[h] = true
		commit, err := repo.CommitObject(h)
		if err != nil {
			return errors.WithStack(err)
		}
		queue = append(queue, commit.ParentHashes...)
	}
	return nil
}
