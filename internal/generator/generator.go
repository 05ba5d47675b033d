// Package generator is the run-loop orchestrator: six strictly sequential
// phases from initialization through the final report. Each phase after
// initializing gates on the status tracker's aborted flag, so a failure
// anywhere turns every later phase into a no-op.
package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"sprout/internal/config"
	"sprout/internal/hub"
	"sprout/internal/interview"
	"sprout/internal/report"
	"sprout/internal/setup"
	"sprout/internal/status"
	"sprout/internal/task"
	"sprout/internal/tmpl"
	"sprout/internal/vcs"
)

const banner = "sprout | project scaffolding wizard"

// Deps are the external collaborators the orchestrator hands off to.
type Deps struct {
	Git      vcs.Gateway
	Hubs     hub.Directory
	Prompter interview.Prompter
	Sink     report.Sink
	Fs       afero.Fs
	Logger   zerolog.Logger
}

// Generator drives one create or clone run to completion.
type Generator struct {
	mode config.Mode
	opts *config.Options
	deps Deps

	tracker *status.Tracker
	setup   setup.Results
	answers interview.Answers

	destPath        string
	writingComplete bool
	installComplete bool
	startedAt       time.Time
}

// New validates opts against mode and builds a Generator. A validation
// failure here is a contract violation and is returned rather than tracked:
// the run never starts.
func New(mode config.Mode, opts *config.Options, deps Deps) (*Generator, error) {
	if opts == nil {
		return nil, fmt.Errorf("options are required")
	}
	if err := opts.Validate(mode); err != nil {
		return nil, err
	}
	if deps.Git == nil || deps.Hubs == nil || deps.Prompter == nil || deps.Sink == nil || deps.Fs == nil {
		return nil, fmt.Errorf("all generator dependencies are required")
	}
	return &Generator{
		mode:    mode,
		opts:    opts,
		deps:    deps,
		tracker: status.NewTracker(deps.Logger),
	}, nil
}

// Run executes the six phases in order and returns the tracker for the
// caller to report on and derive an exit code from. Collaborator failures
// never escape as errors; they are recorded exactly once via the tracker.
func (g *Generator) Run(ctx context.Context) *status.Tracker {
	g.startedAt = time.Now()
	g.tracker.Start()

	g.initializing(ctx)
	g.prompting()
	g.configuring()
	g.writing(ctx)
	g.install(ctx)
	g.end()

	return g.tracker
}

// Tracker exposes the run's status record.
func (g *Generator) Tracker() *status.Tracker { return g.tracker }

// initializing shows the banner and runs the two pre-flight batches against
// one shared task context. The git validation batch must finish before
// account discovery starts.
func (g *Generator) initializing(ctx context.Context) {
	g.deps.Sink.Banner(banner)

	runner := task.NewRunner(g.deps.Sink, g.deps.Logger)
	tc := task.Context{}

	delay := time.Duration(g.opts.RemoteCheckDelaySeconds) * time.Second
	if _, err := runner.Run(ctx, setup.GitValidationTasks(g.deps.Git, g.opts.GitRemoteURI, delay), tc); err != nil {
		g.tracker.Abort(status.Message{
			Type:    status.Error,
			Title:   "Initialization Error",
			Message: remediationFor(err),
		})
		return
	}
	if _, err := runner.Run(ctx, setup.HubDiscoveryTasks(g.deps.Hubs), tc); err != nil {
		g.tracker.Abort(status.Message{
			Type:    status.Error,
			Title:   "Initialization Error",
			Message: remediationFor(err),
		})
		return
	}

	// The task context dies here; keep what the later phases need.
	g.setup = setup.CollectResults(tc)
}

// prompting runs the interview to termination. A user cancel is a normal
// abort, not an error.
func (g *Generator) prompting() {
	if g.tracker.IsAborted() {
		return
	}

	engine := interview.NewEngine(interview.Config{
		Build:    g.buildQuestions,
		Prompter: g.deps.Prompter,
		Review:   g.reviewAnswers,
		Defaults: g.defaultAnswers(),
		Logger:   g.deps.Logger,
	})

	answers, outcome, err := engine.Run()
	if err != nil {
		g.tracker.Abort(status.Message{
			Type:    status.Error,
			Title:   "Interview Error",
			Message: err.Error(),
		})
		return
	}
	if outcome == interview.Canceled {
		g.tracker.Abort(status.Message{
			Type:    status.Error,
			Title:   "Command Aborted",
			Message: "command canceled by user",
		})
		return
	}
	g.answers = answers
}

// configuring resolves the destination path from the final answers before
// anything touches the disk.
func (g *Generator) configuring() {
	if g.tracker.IsAborted() {
		return
	}

	targetDir, _ := g.answers["targetDirectory"].(string)
	switch g.mode {
	case config.Clone:
		dirName, _ := g.answers["gitCloneDir"].(string)
		if dirName == "" {
			uri, _ := g.answers["gitRemoteUri"].(string)
			name, err := vcs.RepoNameFromURI(uri)
			if err != nil {
				g.tracker.Abort(status.Message{
					Type:    status.Error,
					Title:   "Configuration Error",
					Message: err.Error(),
				})
				return
			}
			dirName = name
		}
		g.answers["gitCloneDir"] = dirName
		g.destPath = filepath.Join(targetDir, dirName)
	default:
		projectName, _ := g.answers["projectName"].(string)
		g.destPath = filepath.Join(targetDir, projectName)
	}
	g.deps.Logger.Debug().Str("dest", g.destPath).Msg("resolved destination path")
}

// writing materializes the project tree: a clone for clone runs, the bundled
// template set for create runs. Any failure aborts the run; success is
// narrated so it survives into the final report even if install falters.
func (g *Generator) writing(ctx context.Context) {
	if g.tracker.IsAborted() {
		return
	}

	if exists, _ := afero.DirExists(g.deps.Fs, g.destPath); exists {
		g.tracker.Abort(status.Message{
			Type:    status.Error,
			Title:   "Write Error",
			Message: fmt.Sprintf("destination %s already exists", g.destPath),
		})
		return
	}

	switch g.mode {
	case config.Clone:
		uri, _ := g.answers["gitRemoteUri"].(string)
		targetDir, _ := g.answers["targetDirectory"].(string)
		dirName, _ := g.answers["gitCloneDir"].(string)
		if err := g.deps.Git.Clone(ctx, uri, targetDir, dirName); err != nil {
			g.tracker.Abort(status.Message{
				Type:    status.Error,
				Title:   "Git Clone Error",
				Message: err.Error(),
			})
			return
		}
		g.tracker.AddMessage(status.Message{
			Type:    status.Success,
			Title:   "Cloned Successfully",
			Message: fmt.Sprintf("%s cloned to %s", uri, g.destPath),
		})
	default:
		materializer := tmpl.NewMaterializer(g.deps.Fs, g.deps.Logger)
		if err := materializer.MaterializeAll(tmpl.ProjectTemplates(), g.destPath, g.answers); err != nil {
			g.tracker.Abort(status.Message{
				Type:    status.Error,
				Title:   "Write Error",
				Message: err.Error(),
			})
			return
		}
		g.tracker.AddMessage(status.Message{
			Type:    status.Success,
			Title:   "Project Created",
			Message: fmt.Sprintf("project files written to %s", g.destPath),
		})
	}
	g.writingComplete = true
}

// install runs the post-write niceties. The deliverable already exists on
// disk, so failures here are narrated as warnings and swallowed; they never
// flip the run to aborted.
func (g *Generator) install(ctx context.Context) {
	if g.tracker.IsAborted() || !g.writingComplete {
		return
	}

	if g.mode == config.Create {
		if err := g.deps.Git.InitRepo(ctx, g.destPath); err != nil {
			g.deps.Logger.Warn().Err(err).Msg("git init failed")
			g.tracker.AddMessage(status.Message{
				Type:    status.Warning,
				Title:   "Git Init Skipped",
				Message: err.Error(),
			})
		} else if err := g.deps.Git.CommitAll(ctx, g.destPath, "Initial commit"); err != nil {
			g.deps.Logger.Warn().Err(err).Msg("initial commit failed")
			g.tracker.AddMessage(status.Message{
				Type:    status.Warning,
				Title:   "Initial Commit Skipped",
				Message: err.Error(),
			})
		} else {
			g.tracker.AddMessage(status.Message{
				Type:    status.Success,
				Title:   "Git Initialized",
				Message: "local repository initialized with an initial commit",
			})
		}
	}
	g.installComplete = true
}

// end settles the run: completed when writing and install both ran, a final
// abort otherwise.
func (g *Generator) end() {
	if g.tracker.IsAborted() {
		return
	}
	if !g.installComplete {
		g.tracker.Abort(status.Message{
			Type:    status.Error,
			Title:   "Project Creation Failed",
			Message: "the project could not be created",
		})
		return
	}
	g.tracker.Complete(status.Message{
		Type:    status.Success,
		Title:   "Finished",
		Message: fmt.Sprintf("%s run finished in %s", g.mode, time.Since(g.startedAt).Round(time.Millisecond)),
	})
}

// Report renders the final outcome from the accumulated messages: the full
// success narration, or exactly one failure message.
func (g *Generator) Report() {
	msgs := g.tracker.Messages()
	if g.tracker.Completed() {
		rows := []report.Row{
			{Label: "Mode", Value: g.mode.String()},
			{Label: "Destination", Value: g.destPath},
			{Label: "Elapsed", Value: time.Since(g.startedAt).Round(time.Millisecond).String()},
		}
		g.deps.Sink.SuccessSummary(rows, msgs)
		return
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == status.Error {
			g.deps.Sink.Failure(msgs[i])
			return
		}
	}
}

// remediationFor maps known pre-flight failures to actionable text; empty
// repo and unreachable repo deliberately read differently.
func remediationFor(err error) string {
	switch {
	case errors.Is(err, vcs.ErrToolMissing):
		return "git was not found on your PATH; install git and try again"
	case errors.Is(err, vcs.ErrRemoteEmpty):
		return "the remote repository has no commits; push at least one commit and try again"
	case errors.Is(err, vcs.ErrRemoteUnreachable):
		return "the remote repository could not be reached; check the URI and your network"
	case errors.Is(err, hub.ErrNoAccounts):
		return "no authenticated accounts were found; authenticate with your org CLI first"
	case errors.Is(err, hub.ErrNoHubs):
		return "none of your authenticated accounts is a connected hub; enable a hub and try again"
	default:
		return err.Error()
	}
}
