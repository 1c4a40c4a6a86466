// Package main provides the CLI entrypoint for passlab.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/passlab/internal/config"
	"github.com/verte-zerg/passlab/internal/ingest"
	"github.com/verte-zerg/passlab/internal/model"
	"github.com/verte-zerg/passlab/internal/report"
)

const (
	defaultShards     = 1
	defaultTop        = 20
	defaultPositions  = 10
	defaultHistoryMax = 20
)

var (
	analyzeMinLength  int
	analyzeMaxLength  int
	analyzeASCIIOnly  bool
	analyzePattern    string
	analyzeEnhanced   bool
	analyzeDictionary string
	analyzeOutput     string
	analyzeFormats    []string
	analyzeShards     int
	analyzeTop        int
	analyzePositions  int
	analyzeEncoding   string
	analyzeSave       bool
	analyzeTUI        bool
	analyzeVerbose    bool
	analyzeConfigPath string

	showSummary   bool
	showPosition  bool
	showFollowers bool
	showClassic   bool
	showAll       bool

	historyLimit int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "passlab <file|->",
		Short:         "Password corpus statistics",
		Long:          "Analyze a newline separated password list and report length, pattern, character, position and follower statistics.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	flags := rootCmd.Flags()
	flags.IntVar(&analyzeMinLength, "min-length", model.DefaultMinLength, "minimum password length to include")
	flags.IntVar(&analyzeMaxLength, "max-length", model.DefaultMaxLength, "maximum password length to include")
	flags.BoolVar(&analyzeASCIIOnly, "ascii-only", false, "exclude passwords with non-ASCII or non-printable characters")
	flags.StringVar(&analyzePattern, "pattern", "", "keep passwords matching a template (l=lowercase, L=uppercase, d=digit, s=special)")
	flags.BoolVar(&analyzeEnhanced, "enhanced", false, "enable enhanced pattern detection")
	flags.StringVar(&analyzeDictionary, "dictionary", "", "dictionary file for word detection")
	flags.StringVarP(&analyzeOutput, "output", "o", "", "directory to export results to")
	flags.StringSliceVar(&analyzeFormats, "format", nil, "export formats: csv, json, markdown (default csv,json)")
	flags.IntVar(&analyzeShards, "shards", defaultShards, "number of parallel accumulators")
	flags.IntVar(&analyzeTop, "top", defaultTop, "entries in ranked character, trigram and heuristic tables")
	flags.IntVar(&analyzePositions, "positions", defaultPositions, "positions shown in the position analysis")
	flags.StringVar(&analyzeEncoding, "encoding", ingest.DefaultEncoding, "input text encoding")
	flags.BoolVar(&analyzeSave, "save", false, "store the run summary in the history database")
	flags.BoolVarP(&analyzeTUI, "interactive", "i", false, "browse the report in an interactive UI")
	flags.BoolVarP(&analyzeVerbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&analyzeConfigPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")

	flags.BoolVar(&showSummary, "summary", false, "show the summary and character analysis")
	flags.BoolVar(&showPosition, "position", false, "show the position analysis")
	flags.BoolVar(&showFollowers, "followers", false, "show the character follower analysis")
	flags.BoolVar(&showClassic, "classic", false, "show the classic type analysis")
	flags.BoolVar(&showAll, "all", false, "show every section and enable enhanced detection")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		template := config.Template(model.DefaultMinLength, model.DefaultMaxLength, defaultShards, defaultTop, defaultPositions)
		if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// buildConfig overlays the config file on flags the user did not set and
// validates the result.
func buildConfig(cmd *cobra.Command, input string, file config.AnalyzeConfig) (model.Config, error) {
	applyIntConfig(cmd, "min-length", &analyzeMinLength, file.MinLength)
	applyIntConfig(cmd, "max-length", &analyzeMaxLength, file.MaxLength)
	applyBoolConfig(cmd, "ascii-only", &analyzeASCIIOnly, file.ASCIIOnly)
	applyStringConfig(cmd, "pattern", &analyzePattern, file.Pattern)
	applyBoolConfig(cmd, "enhanced", &analyzeEnhanced, file.Enhanced)
	applyStringConfig(cmd, "dictionary", &analyzeDictionary, file.Dictionary)
	applyStringConfig(cmd, "output", &analyzeOutput, file.Output)
	applyStringSliceConfig(cmd, "format", &analyzeFormats, file.Formats)
	applyIntConfig(cmd, "shards", &analyzeShards, file.Shards)
	applyIntConfig(cmd, "top", &analyzeTop, file.Top)
	applyIntConfig(cmd, "positions", &analyzePositions, file.Positions)
	applyStringConfig(cmd, "encoding", &analyzeEncoding, file.Encoding)
	applyBoolConfig(cmd, "save", &analyzeSave, file.Save)

	formats, err := report.ParseFormats(analyzeFormats)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --format value: %w", err)
	}

	cfg := model.Config{
		Input: input,
		Options: model.Options{
			MinLength: analyzeMinLength,
			MaxLength: analyzeMaxLength,
			ASCIIOnly: analyzeASCIIOnly,
			Pattern:   analyzePattern,
			Enhanced:  analyzeEnhanced || showAll,
		},
		Dictionary:  analyzeDictionary,
		OutputDir:   analyzeOutput,
		Formats:     formats,
		Shards:      analyzeShards,
		Top:         analyzeTop,
		Positions:   analyzePositions,
		Encoding:    analyzeEncoding,
		Save:        analyzeSave,
		Interactive: analyzeTUI,
		Verbose:     analyzeVerbose,
		Sections: resolveSections(sectionFlags{
			summary:   showSummary,
			position:  showPosition,
			followers: showFollowers,
			enhanced:  cmd.Flags().Changed("enhanced") && analyzeEnhanced,
			classic:   showClassic,
			all:       showAll,
		}, analyzeEnhanced || showAll),
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

type sectionFlags struct {
	summary   bool
	position  bool
	followers bool
	enhanced  bool
	classic   bool
	all       bool
}

// resolveSections shows every section when no section flag is given. The
// enhanced section is shown whenever enhanced detection ran.
func resolveSections(f sectionFlags, enhanced bool) model.Sections {
	everything := f.all || !(f.summary || f.position || f.followers || f.enhanced || f.classic)
	return model.Sections{
		Summary:   everything || f.summary,
		Position:  everything || f.position,
		Followers: everything || f.followers,
		Enhanced:  enhanced && (everything || f.enhanced),
		Classic:   everything || f.classic,
	}
}

func validateConfig(cfg model.Config) error {
	if cfg.Options.MinLength < 0 {
		return fmt.Errorf("--min-length must be >= 0")
	}
	if cfg.Options.MaxLength < 1 {
		return fmt.Errorf("--max-length must be > 0")
	}
	if cfg.Options.MinLength > cfg.Options.MaxLength {
		return fmt.Errorf("--min-length must not exceed --max-length")
	}
	if cfg.Shards < 1 {
		return fmt.Errorf("--shards must be > 0")
	}
	if cfg.Top < 1 {
		return fmt.Errorf("--top must be > 0")
	}
	if cfg.Positions < 1 {
		return fmt.Errorf("--positions must be > 0")
	}
	return nil
}

// reportLimits returns the standard table sizes with the --top and
// --positions overrides applied.
func reportLimits(cfg model.Config) report.Limits {
	lim := report.DefaultLimits()
	lim.Positions = cfg.Positions
	if cfg.Top != defaultTop {
		lim.Chars = cfg.Top
		lim.FollowerChars = cfg.Top
		lim.Trigrams = cfg.Top
		lim.Heuristics = cfg.Top
		lim.Words = cfg.Top
		lim.Boundaries = cfg.Top
	}
	return lim
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
