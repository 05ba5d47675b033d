// Package cli is the thin cobra wrapper around the generator: it maps flags
// onto the typed options, wires the real collaborators, and turns the run's
// final status into an exit code.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"sprout/internal/config"
	"sprout/internal/generator"
	"sprout/internal/hub"
	"sprout/internal/interview"
	"sprout/internal/report"
	"sprout/internal/shell"
	"sprout/internal/vcs"
)

var rootCmd = &cobra.Command{
	Use:   "sprout",
	Short: "Sprout is an interactive wizard for scaffolding and cloning projects",
	Long:  `Sprout interviews you about your project, validates your tooling and accounts, and then materializes a new project tree or clones an existing one.`,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Scaffold a new project from the bundled template",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, config.Create)
	},
}

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone an existing remote project",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, config.Clone)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(cloneCmd)

	createCmd.Flags().StringP("output-dir", "d", "", "Directory to create the project in")
	createCmd.Flags().StringP("project-name", "n", "", "Name of the project to create")
	createCmd.Flags().StringP("config", "c", "", "Path to custom configuration file")

	cloneCmd.Flags().StringP("uri", "u", "", "URI of the remote repository to clone")
	cloneCmd.Flags().StringP("output-dir", "d", "", "Directory to clone the project into")
	cloneCmd.Flags().String("git-clone-dir", "", "Directory name to clone into (defaults to the repository name)")
	cloneCmd.Flags().StringP("config", "c", "", "Path to custom configuration file")
	cloneCmd.MarkFlagRequired("uri")
}

func run(cmd *cobra.Command, mode config.Mode) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	log := newLogger()
	deps := generator.Deps{
		Git:      vcs.NewGit(shell.NewExecutor(log), vcs.DefaultClassifyCodes(), log),
		Hubs:     hub.NewCLIDirectory(shell.NewExecutor(log), log),
		Prompter: interview.NewConsolePrompter(),
		Sink:     report.NewConsoleSink(os.Stdout),
		Fs:       afero.NewOsFs(),
		Logger:   log,
	}

	gen, err := generator.New(mode, opts, deps)
	if err != nil {
		return err
	}

	tracker := gen.Run(cmd.Context())
	gen.Report()
	if !tracker.Completed() {
		os.Exit(1)
	}
	return nil
}

func parseOptions(cmd *cobra.Command) (*config.Options, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	opts, err := config.LoadOptions(configPath)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		opts.OutputDir = v
	}
	if f := cmd.Flags().Lookup("project-name"); f != nil && f.Value.String() != "" {
		opts.ProjectName = f.Value.String()
	}
	if f := cmd.Flags().Lookup("uri"); f != nil && f.Value.String() != "" {
		opts.GitRemoteURI = f.Value.String()
	}
	if f := cmd.Flags().Lookup("git-clone-dir"); f != nil && f.Value.String() != "" {
		opts.CloneDirName = f.Value.String()
	}
	return opts, nil
}

// newLogger writes the debug trail to a log file so it never interleaves
// with the interview on stdout.
func newLogger() zerolog.Logger {
	logFile, err := os.OpenFile("sprout.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(logFile).With().Timestamp().Logger()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
