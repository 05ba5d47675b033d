package vcs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprout/internal/shell"
)

type fakeExecutor struct {
	result    shell.Result
	installed bool
	calls     [][]string
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args ...string) shell.Result {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.result
}

func (f *fakeExecutor) LookPath(name string) bool { return f.installed }

func TestRepoNameFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"https://github.com/org/my-repo.git", "my-repo"},
		{"https://github.com/org/my-repo", "my-repo"},
		{"https://github.com/org/my-repo/", "my-repo"},
		{"git@github.com:org/my-repo.git", "my-repo"},
		{"ssh://git@host/team/project.git", "project"},
	}
	for _, tt := range tests {
		got, err := RepoNameFromURI(tt.uri)
		require.NoError(t, err, tt.uri)
		assert.Equal(t, tt.want, got, tt.uri)
	}
}

func TestRepoNameFromURIUnparsable(t *testing.T) {
	for _, uri := range []string{"", "   ", "https://github.com", "https://github.com/"} {
		_, err := RepoNameFromURI(uri)
		assert.Error(t, err, "uri %q should not parse", uri)
	}
}

func TestClassifyRemoteResult(t *testing.T) {
	codes := DefaultClassifyCodes()

	info, err := ClassifyRemoteResult(shell.Result{Code: 0}, codes)
	require.NoError(t, err)
	assert.True(t, info.Reachable)
	assert.True(t, info.HasCommits)

	_, err = ClassifyRemoteResult(shell.Result{Code: 2}, codes)
	assert.ErrorIs(t, err, ErrRemoteEmpty)

	_, err = ClassifyRemoteResult(shell.Result{Code: 128}, codes)
	assert.ErrorIs(t, err, ErrRemoteUnreachable)

	_, err = ClassifyRemoteResult(shell.Result{Code: 42, Stderr: "odd failure"}, codes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected")
	assert.NotErrorIs(t, err, ErrRemoteEmpty)
	assert.NotErrorIs(t, err, ErrRemoteUnreachable)
}

func TestClassifyRemoteResultHonorsCustomCodes(t *testing.T) {
	codes := ClassifyCodes{HasCommits: 0, Empty: 3, Unreachable: 99}

	_, err := ClassifyRemoteResult(shell.Result{Code: 3}, codes)
	assert.ErrorIs(t, err, ErrRemoteEmpty)

	_, err = ClassifyRemoteResult(shell.Result{Code: 99}, codes)
	assert.ErrorIs(t, err, ErrRemoteUnreachable)
}

func TestClassifyRemoteResultExecFailure(t *testing.T) {
	startErr := errors.New("exec: not found")
	_, err := ClassifyRemoteResult(shell.Result{Code: -1, Err: startErr}, DefaultClassifyCodes())
	assert.ErrorIs(t, err, startErr)
}

func TestCheckRemote(t *testing.T) {
	exec := &fakeExecutor{result: shell.Result{Code: 0}}
	git := NewGit(exec, DefaultClassifyCodes(), zerolog.Nop())

	info, err := git.CheckRemote(context.Background(), "https://github.com/org/repo.git", 0)
	require.NoError(t, err)
	assert.True(t, info.HasCommits)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"git", "ls-remote", "--exit-code", "-h", "https://github.com/org/repo.git"}, exec.calls[0])
}

func TestCheckRemoteDelayObeysContext(t *testing.T) {
	exec := &fakeExecutor{result: shell.Result{Code: 0}}
	git := NewGit(exec, DefaultClassifyCodes(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := git.CheckRemote(ctx, "https://github.com/org/repo.git", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exec.calls)
}

func TestCloneBuildsExpectedCommand(t *testing.T) {
	exec := &fakeExecutor{result: shell.Result{Code: 0}}
	git := NewGit(exec, DefaultClassifyCodes(), zerolog.Nop())

	err := git.Clone(context.Background(), "https://github.com/org/repo.git", "/tmp/projects", "my-dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "-C", "/tmp/projects", "clone", "https://github.com/org/repo.git", "my-dir"}, exec.calls[0])
}

func TestCloneFailureIncludesStderr(t *testing.T) {
	exec := &fakeExecutor{result: shell.Result{Code: 128, Stderr: "destination path exists"}}
	git := NewGit(exec, DefaultClassifyCodes(), zerolog.Nop())

	err := git.Clone(context.Background(), "https://github.com/org/repo.git", ".", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination path exists")
}

func TestIsToolInstalled(t *testing.T) {
	git := NewGit(&fakeExecutor{installed: true}, DefaultClassifyCodes(), zerolog.Nop())
	assert.True(t, git.IsToolInstalled())

	git = NewGit(&fakeExecutor{installed: false}, DefaultClassifyCodes(), zerolog.Nop())
	assert.False(t, git.IsToolInstalled())
}
