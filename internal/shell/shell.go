// Package shell runs external commands and normalizes their outcomes into
// Result values the rest of the wizard can classify without touching os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Result describes the outcome of one external command invocation.
type Result struct {
	Code   int
	Stdout string
	Stderr string
	Err    error
}

// Ok reports whether the command ran and exited zero.
func (r Result) Ok() bool {
	return r.Err == nil && r.Code == 0
}

// Executor runs external commands. It exists so gateways can be tested
// against scripted results instead of a live PATH.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) Result
	LookPath(name string) bool
}

type execExecutor struct {
	log zerolog.Logger
}

// NewExecutor returns an Executor backed by os/exec.
func NewExecutor(log zerolog.Logger) Executor {
	return &execExecutor{log: log}
}

func (e *execExecutor) Run(ctx context.Context, name string, args ...string) Result {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
		} else {
			// Command never started (not found, bad permissions).
			res.Code = -1
			res.Err = err
		}
	}
	e.log.Debug().
		Str("command", name).
		Strs("args", args).
		Int("code", res.Code).
		Msg("external command finished")
	return res
}

func (e *execExecutor) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
