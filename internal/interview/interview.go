// Package interview drives the wizard's question rounds: ask every visible
// question, show the answers for review, then confirm or restart. Defaults
// for a restarted round come from the immediately prior answers so the user
// only retypes what they want to change.
package interview

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrCanceled is returned when the user interrupts a prompt (ctrl-c / EOF).
var ErrCanceled = errors.New("interview canceled by user")

// Answers maps question names to answered values (string or bool).
type Answers map[string]any

// Merge returns a copy of base with overlay's keys taking precedence.
func Merge(base, overlay Answers) Answers {
	merged := make(Answers, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// Kind selects how a question is prompted.
type Kind int

const (
	Text Kind = iota
	Confirm
	Select
)

// Option is one entry in a Select question's list.
type Option struct {
	Label string
	Value string
}

// Question describes one interview field. Validate and VisibleIf are plain
// functions so conditional branching stays explicit data, not behavior baked
// into the engine.
type Question struct {
	Name      string
	Prompt    string
	Kind      Kind
	Options   []Option
	Validate  func(string) error
	VisibleIf func(soFar Answers) bool
}

// Confirmation is the answer pair closing each round. Restart is only
// meaningful when Proceed is false.
type Confirmation struct {
	Proceed bool
	Restart bool
}

// Prompter performs the actual terminal interaction. Tests supply a
// scripted implementation.
type Prompter interface {
	Text(label, def string, validate func(string) error) (string, error)
	Confirm(label string, def bool) (bool, error)
	Select(label string, options []Option, defValue string) (string, error)
}

// Outcome is how a Run terminated.
type Outcome int

const (
	Proceed Outcome = iota
	Canceled
)

// Engine owns one interview's state: the run defaults seeded from options
// and the user answers from the latest completed round.
type Engine struct {
	build    func(current Answers) []Question
	prompter Prompter
	review   func(final Answers)
	defaults Answers
	user     Answers
	log      zerolog.Logger
}

// Config wires an Engine. Build is called at the top of every round so each
// question's option data and ordering can depend on the answers so far.
// Review, if set, is called with the round's answers before confirmation.
type Config struct {
	Build    func(current Answers) []Question
	Prompter Prompter
	Review   func(final Answers)
	Defaults Answers
	Logger   zerolog.Logger
}

func NewEngine(cfg Config) *Engine {
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = Answers{}
	}
	return &Engine{
		build:    cfg.Build,
		prompter: cfg.Prompter,
		review:   cfg.Review,
		defaults: defaults,
		user:     Answers{},
		log:      cfg.Logger,
	}
}

// Run loops rounds of questions until the user proceeds or cancels. On
// Proceed the returned answers are the run defaults shallow-merged under the
// final round's answers.
func (e *Engine) Run() (Answers, Outcome, error) {
	for round := 1; ; round++ {
		e.log.Debug().Int("round", round).Msg("starting interview round")

		answers, err := e.askQuestions()
		if err != nil {
			if errors.Is(err, ErrCanceled) {
				return nil, Canceled, nil
			}
			return nil, Canceled, err
		}
		e.user = answers

		if e.review != nil {
			e.review(e.Final())
		}

		conf, err := e.askConfirmation()
		if err != nil {
			if errors.Is(err, ErrCanceled) {
				return nil, Canceled, nil
			}
			return nil, Canceled, err
		}

		switch {
		case conf.Proceed:
			return e.Final(), Proceed, nil
		case conf.Restart:
			e.log.Debug().Msg("user requested interview restart")
			continue
		default:
			return nil, Canceled, nil
		}
	}
}

// Final is the shallow merge of run defaults and user answers, user answers
// winning per key.
func (e *Engine) Final() Answers {
	return Merge(e.defaults, e.user)
}

// askQuestions runs one round. The question set is rebuilt so selects see
// fresh option data and defaults reflect the prior round.
func (e *Engine) askQuestions() (Answers, error) {
	resolved := e.Final()
	round := Answers{}

	for _, q := range e.build(resolved) {
		soFar := Merge(resolved, round)
		if q.VisibleIf != nil && !q.VisibleIf(soFar) {
			continue
		}

		switch q.Kind {
		case Confirm:
			def, _ := soFar[q.Name].(bool)
			v, err := e.prompter.Confirm(q.Prompt, def)
			if err != nil {
				return nil, err
			}
			round[q.Name] = v
		case Select:
			def, _ := soFar[q.Name].(string)
			v, err := e.prompter.Select(q.Prompt, q.Options, def)
			if err != nil {
				return nil, err
			}
			round[q.Name] = v
		default:
			def, _ := soFar[q.Name].(string)
			v, err := e.prompter.Text(q.Prompt, def, q.Validate)
			if err != nil {
				return nil, err
			}
			round[q.Name] = v
		}
	}
	return round, nil
}

// askConfirmation closes a round: proceed, or if not, offer a restart.
func (e *Engine) askConfirmation() (Confirmation, error) {
	proceed, err := e.prompter.Confirm("Create the project with the above settings?", true)
	if err != nil {
		return Confirmation{}, err
	}
	if proceed {
		return Confirmation{Proceed: true}, nil
	}
	restart, err := e.prompter.Confirm("Would you like to start over and edit your answers?", true)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{Proceed: false, Restart: restart}, nil
}
