package generator

import (
	"fmt"
	"sort"

	"sprout/internal/config"
	"sprout/internal/hub"
	"sprout/internal/interview"
	"sprout/internal/report"
	"sprout/internal/validate"
)

// defaultAnswers seeds every question key from the invocation options, so
// the default resolution invariant holds before any question is shown and a
// user can enter through the whole interview.
func (g *Generator) defaultAnswers() interview.Answers {
	return interview.Answers{
		"projectName":       g.opts.ProjectName,
		"targetDirectory":   g.opts.OutputDir,
		"gitRemoteUri":      g.opts.GitRemoteURI,
		"gitCloneDir":       g.opts.CloneDirName,
		"hubAlias":          g.opts.HubAlias,
		"hasGitRemote":      g.opts.GitRemoteURI != "",
		"isCreatingPackage": false,
		"namespacePrefix":   g.opts.NamespacePrefix,
	}
}

// buildQuestions rebuilds the question set for each round. The hub choice
// list comes from setup results; if it were empty the run would already have
// aborted during initialization.
func (g *Generator) buildQuestions(current interview.Answers) []interview.Question {
	hubOptions := make([]interview.Option, 0, len(g.setup.HubChoices))
	for _, c := range g.setup.HubChoices {
		hubOptions = append(hubOptions, interview.Option{Label: c.DisplayName, Value: c.Value})
	}

	if g.mode == config.Clone {
		return []interview.Question{
			{
				Name:     "gitRemoteUri",
				Prompt:   "What is the URI of the repository to clone?",
				Validate: validate.GitRemoteURI,
			},
			{
				Name:     "targetDirectory",
				Prompt:   "Where should the project be cloned?",
				Validate: validate.LocalPath,
			},
			{
				Name:   "gitCloneDir",
				Prompt: "Clone into a specific directory name? (leave blank to use the repository name)",
				Validate: func(input string) error {
					if input == "" {
						return nil
					}
					return validate.LocalPath(input)
				},
			},
			{
				Name:    "hubAlias",
				Prompt:  "Which hub account should this project use?",
				Kind:    interview.Select,
				Options: hubOptions,
			},
		}
	}

	return []interview.Question{
		{
			Name:     "projectName",
			Prompt:   "What is the name of your project?",
			Validate: validate.ProjectName,
		},
		{
			Name:     "targetDirectory",
			Prompt:   "Where should the project be created?",
			Validate: validate.LocalPath,
		},
		{
			Name:    "hubAlias",
			Prompt:  "Which hub account should this project use?",
			Kind:    interview.Select,
			Options: hubOptions,
		},
		{
			Name:   "isCreatingPackage",
			Prompt: "Are you building a packaged artifact?",
			Kind:   interview.Confirm,
		},
		{
			Name:   "namespacePrefix",
			Prompt: "What namespace prefix should the package use?",
			VisibleIf: func(soFar interview.Answers) bool {
				v, _ := soFar["isCreatingPackage"].(bool)
				return v
			},
		},
		{
			Name:   "hasGitRemote",
			Prompt: "Do you have a git remote for this project?",
			Kind:   interview.Confirm,
		},
		{
			Name:     "gitRemoteUri",
			Prompt:   "What is the URI of the git remote?",
			Validate: validate.GitRemoteURI,
			VisibleIf: func(soFar interview.Answers) bool {
				v, _ := soFar["hasGitRemote"].(bool)
				return v
			},
		},
	}
}

// reviewAnswers renders the round's answers for the user to inspect before
// the confirmation question.
func (g *Generator) reviewAnswers(final interview.Answers) {
	keys := make([]string, 0, len(final))
	for k := range final {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]report.Row, 0, len(keys))
	for _, k := range keys {
		v := final[k]
		if k == "hubAlias" {
			if s, ok := v.(string); ok && s == hub.NotApplicableValue {
				v = "none"
			}
		}
		rows = append(rows, report.Row{Label: k, Value: fmt.Sprintf("%v", v)})
	}
	g.deps.Sink.Table(rows)
}
