// Package cli wires the refile command line to the rename engine.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"refile/internal/config"
	"refile/internal/logging"
	"refile/internal/orchestrator"
	"refile/internal/output"
	"refile/internal/prompt"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for refile
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refile [flags] FIND REPLACE [FILE...]",
		Short: "Rename files with regular expressions",
		Long: `refile renames files by applying regular expression find/replace rules
to their names. Only the last path component is changed; files stay in
their directory.

Rules are applied in order and each rule sees the result of the one before
it. Replacements may reference capture groups as $1, ${1}, $name or ${name}.
Use ${1}x rather than $1x when a group is followed by letters or digits.

Examples:
  # Change the extension of every .jpeg file
  refile '\.jpeg$' .jpg *.jpeg

  # Preview the result first
  refile --dry-run '(\d{4})-(\d{2})-(\d{2})' '${3}.${2}.${1}' *.pdf

  # Chain rules: spaces to underscores everywhere, then lowercase extension
  refile -g ' ' _ -e '\.JPG$' -r .jpg *

  # Load more rules from a file
  refile --rules cleanup.yaml '^IMG_' photo_ *.jpg`,
		Version:      Version,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.Flags().StringArrayP("expression", "e", nil, "Additional pattern to find (repeatable, paired with --replace)")
	cmd.Flags().StringArrayP("replace", "r", nil, "Replacement for the matching --expression")
	cmd.Flags().String("rules", "", "YAML or JSON file with additional rules")
	cmd.Flags().BoolP("global", "g", false, "Replace every match instead of only the first")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files without asking")
	cmd.Flags().BoolP("interactive", "i", false, "Ask before overwriting existing files")
	cmd.Flags().BoolP("dry-run", "n", false, "Show what would be renamed without renaming")
	cmd.Flags().BoolP("verbose", "v", false, "Also report unmatched files and skipped directories")
	cmd.Flags().BoolP("ignore-dir", "d", false, "Skip paths that are not files instead of failing")
	cmd.Flags().String("color", string(config.ColorAuto), "Color output: auto, always or never")
	cmd.Flags().Bool("debug", false, "Write a decision trace to stderr")

	return cmd
}

// Execute runs cmd and reports a failure on its error stream. It returns the
// process exit code.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	mode := config.ColorAuto
	if f := cmd.Flags().Lookup("color"); f != nil {
		mode = config.ColorMode(f.Value.String())
	}
	errCfg := output.DefaultConfig(mode)
	errCfg.ErrWriter = cmd.ErrOrStderr()
	if errCfg.ErrWriter != os.Stderr {
		errCfg.Color = output.ColorEnabled(mode, false)
	}
	output.New(errCfg).Error("%v", err)
	return 1
}

// optionsFromFlags builds Options from the parsed command line.
func optionsFromFlags(cmd *cobra.Command, args []string) (config.Options, error) {
	opts := config.DefaultOptions()
	opts.Pattern = config.Rule{Find: args[0], Replace: args[1]}
	opts.Files = args[2:]

	finds, _ := cmd.Flags().GetStringArray("expression")
	replaces, _ := cmd.Flags().GetStringArray("replace")
	if len(finds) != len(replaces) {
		return opts, &config.ConfigError{
			Type:    config.ValidationError,
			Message: fmt.Sprintf("got %d --expression and %d --replace values; they must come in pairs", len(finds), len(replaces)),
		}
	}
	for i := range finds {
		opts.Patterns = append(opts.Patterns, config.Rule{Find: finds[i], Replace: replaces[i]})
	}

	opts.Global, _ = cmd.Flags().GetBool("global")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.Interactive, _ = cmd.Flags().GetBool("interactive")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")
	opts.IgnoreDir, _ = cmd.Flags().GetBool("ignore-dir")
	opts.Debug, _ = cmd.Flags().GetBool("debug")
	color, _ := cmd.Flags().GetString("color")
	opts.Color = config.ColorMode(color)

	if rulesPath, _ := cmd.Flags().GetString("rules"); rulesPath != "" {
		rf, err := config.LoadRules(rulesPath)
		if err != nil {
			return opts, err
		}
		opts.ApplyRulesFile(rf)
	}

	return opts, nil
}

// runRoot implements the root command logic
func runRoot(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	outCfg := output.DefaultConfig(opts.Color)
	outCfg.Verbose = opts.Verbose
	outCfg.ErrWriter = cmd.ErrOrStderr()
	if w := cmd.OutOrStdout(); w != os.Stdout {
		outCfg.Writer = w
		outCfg.Color = output.ColorEnabled(opts.Color, false)
	}
	out := output.New(outCfg)

	validation := config.ValidateOptions(&opts)
	for _, w := range validation.Warnings {
		out.Warn("%v", w)
	}
	if !validation.Valid {
		errs := make([]error, len(validation.Errors))
		for i, e := range validation.Errors {
			errs[i] = e
		}
		return errors.Join(errs...)
	}

	if opts.Interactive && cmd.InOrStdin() == os.Stdin && !prompt.IsInteractive() {
		out.Warn("stdin is not a terminal; overwrite answers are read from it")
	}

	trace := logging.New(cmd.ErrOrStderr(), opts.Debug)
	orch, err := orchestrator.New(opts, orchestrator.Dependencies{
		Confirmer: prompt.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Logger:    out,
		Trace:     &trace,
	})
	if err != nil {
		return err
	}

	if opts.Verbose {
		for i, rule := range orch.Set().Rules() {
			out.Verbose("Rule %d: %q -> %q", i+1, rule.Find, rule.Replace)
		}
	}

	summary, err := orch.Run()
	out.Verbose("%s in %s", summary.String(), summary.Duration.Round(time.Millisecond))
	return err
}
