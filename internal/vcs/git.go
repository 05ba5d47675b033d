// Package vcs wraps the git executable behind a small gateway the run-loop
// and setup tasks consume. Remote reachability is classified by exit code;
// the exact codes vary across git versions so they are configurable rather
// than hard-coded.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sprout/internal/shell"
)

// Remote classification failures. Distinct sentinels so callers can choose
// remediation text: an empty repo needs commits, an unreachable one needs a
// fixed URL or network.
var (
	ErrToolMissing       = errors.New("git executable not found on PATH")
	ErrRemoteEmpty       = errors.New("remote repository is reachable but has no commits")
	ErrRemoteUnreachable = errors.New("remote repository is unreachable")
)

// ClassifyCodes maps git ls-remote exit codes to remote outcomes.
type ClassifyCodes struct {
	HasCommits  int
	Empty       int
	Unreachable int
}

// DefaultClassifyCodes matches git 2.x behavior for ls-remote --exit-code.
func DefaultClassifyCodes() ClassifyCodes {
	return ClassifyCodes{HasCommits: 0, Empty: 2, Unreachable: 128}
}

// RemoteInfo is the result of a successful remote check.
type RemoteInfo struct {
	Reachable  bool
	HasCommits bool
	Message    string
}

// Gateway is the surface the wizard needs from a version-control tool.
type Gateway interface {
	IsToolInstalled() bool
	CheckRemote(ctx context.Context, uri string, delay time.Duration) (RemoteInfo, error)
	Clone(ctx context.Context, uri, parentDir, dirName string) error
	InitRepo(ctx context.Context, dir string) error
	CommitAll(ctx context.Context, dir, message string) error
}

// Git is the exec-backed Gateway.
type Git struct {
	exec  shell.Executor
	codes ClassifyCodes
	log   zerolog.Logger
}

func NewGit(exec shell.Executor, codes ClassifyCodes, log zerolog.Logger) *Git {
	return &Git{exec: exec, codes: codes, log: log}
}

// IsToolInstalled reports whether git resolves on the current PATH.
func (g *Git) IsToolInstalled() bool {
	return g.exec.LookPath("git")
}

// CheckRemote classifies uri as reachable-with-commits, reachable-but-empty,
// or unreachable. The optional delay lets callers pace consecutive console
// updates; classification itself is driven only by the exit code.
func (g *Git) CheckRemote(ctx context.Context, uri string, delay time.Duration) (RemoteInfo, error) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return RemoteInfo{}, ctx.Err()
		}
	}
	res := g.exec.Run(ctx, "git", "ls-remote", "--exit-code", "-h", uri)
	return ClassifyRemoteResult(res, g.codes)
}

// ClassifyRemoteResult maps a ls-remote result to a RemoteInfo or a sentinel
// error. Split out from CheckRemote so the mapping is testable with
// synthetic results for each code.
func ClassifyRemoteResult(res shell.Result, codes ClassifyCodes) (RemoteInfo, error) {
	if res.Err != nil {
		return RemoteInfo{}, fmt.Errorf("running git ls-remote: %w", res.Err)
	}
	switch res.Code {
	case codes.HasCommits:
		return RemoteInfo{Reachable: true, HasCommits: true, Message: "remote is reachable and contains commits"}, nil
	case codes.Empty:
		return RemoteInfo{Reachable: true}, ErrRemoteEmpty
	case codes.Unreachable:
		return RemoteInfo{}, ErrRemoteUnreachable
	default:
		return RemoteInfo{}, fmt.Errorf("unexpected git ls-remote exit code %d: %s", res.Code, res.Stderr)
	}
}

// Clone clones uri into parentDir. When dirName is empty git chooses the
// directory name from the URI.
func (g *Git) Clone(ctx context.Context, uri, parentDir, dirName string) error {
	args := []string{"-C", parentDir, "clone", uri}
	if dirName != "" {
		args = append(args, dirName)
	}
	res := g.exec.Run(ctx, "git", args...)
	if !res.Ok() {
		if res.Err != nil {
			return fmt.Errorf("running git clone: %w", res.Err)
		}
		return fmt.Errorf("git clone failed (exit %d): %s", res.Code, res.Stderr)
	}
	return nil
}

// InitRepo initializes a repository in dir.
func (g *Git) InitRepo(ctx context.Context, dir string) error {
	res := g.exec.Run(ctx, "git", "-C", dir, "init")
	if !res.Ok() {
		return fmt.Errorf("git init failed (exit %d): %s", res.Code, res.Stderr)
	}
	return nil
}

// CommitAll stages everything in dir and creates a commit.
func (g *Git) CommitAll(ctx context.Context, dir, message string) error {
	if res := g.exec.Run(ctx, "git", "-C", dir, "add", "-A"); !res.Ok() {
		return fmt.Errorf("git add failed (exit %d): %s", res.Code, res.Stderr)
	}
	if res := g.exec.Run(ctx, "git", "-C", dir, "commit", "-m", message); !res.Ok() {
		return fmt.Errorf("git commit failed (exit %d): %s", res.Code, res.Stderr)
	}
	return nil
}

// RepoNameFromURI extracts the repository name from a git remote URI.
// It is a pure function and errors on URIs with no parseable repo segment
// rather than returning an empty string.
func RepoNameFromURI(uri string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(uri), "/")
	if trimmed == "" {
		return "", fmt.Errorf("empty remote URI")
	}

	var repoPath string
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return "", fmt.Errorf("parsing remote URI %q: %w", uri, err)
		}
		repoPath = u.Path
	} else if at := strings.Index(trimmed, "@"); at >= 0 {
		// scp-like form: git@host:org/repo.git
		colon := strings.Index(trimmed, ":")
		if colon < 0 {
			return "", fmt.Errorf("no repository name found in URI %q", uri)
		}
		repoPath = trimmed[colon+1:]
	} else {
		repoPath = trimmed
	}

	name := strings.TrimSuffix(path.Base(strings.TrimRight(repoPath, "/")), ".git")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("no repository name found in URI %q", uri)
	}
	return name, nil
}
