package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Zuo-Peng/chatstats/internal/config"
	"github.com/Zuo-Peng/chatstats/internal/logging"
	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/Zuo-Peng/chatstats/internal/stats"
	"github.com/Zuo-Peng/chatstats/internal/transcript"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootFlags struct {
	year       bool
	user       bool
	pretty     bool
	sort       render.SortBy
	configPath string
	verbose    bool
}

func rootCmd(fs afero.Fs) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "chatstats <path>",
		Short: "Per-author statistics for an exported chat transcript",
		Long: `Reads a chat export where each message starts with a header like
  [1/2/24, 9:05:07 AM] Alice: hello world
and prints, per author, the number of messages and words, the time of the
first message and each author's share of the conversation.

Nothing is printed unless --user is given.

A transcript whose name matches a subcommand (browse, help, completion)
must be given as a path, e.g. ./browse.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// from here on failures are not usage mistakes
			cmd.SilenceUsage = true

			log := logging.New(cmd.ErrOrStderr(), f.verbose)

			cfg, err := loadConfig(fs, f.configPath, log)
			if err != nil {
				return err
			}

			opts := render.Options{Sort: cfg.Sort, Pretty: cfg.Pretty}
			if cmd.Flags().Changed("sort") {
				opts.Sort = f.sort
			}
			if cmd.Flags().Changed("pretty") {
				opts.Pretty = f.pretty
			}

			messages, err := loadMessages(fs, args[0], log)
			if err != nil {
				return err
			}

			if !f.user {
				log.Debug("no --user, nothing to print")
				return nil
			}

			out := cmd.OutOrStdout()
			if !f.year {
				return render.Render(out, stats.Aggregate(messages), opts)
			}
			return renderYears(out, stats.GroupByYear(messages), opts, cfg.UseColor(isTerminal(out)), log)
		},
	}

	cmd.Flags().BoolVarP(&f.year, "year", "y", false, "Print out per year stats")
	cmd.Flags().BoolVarP(&f.user, "user", "u", false, "Print out per user stats")
	cmd.Flags().BoolVarP(&f.pretty, "pretty", "p", false, "Pretty print the table")
	cmd.Flags().Var(&f.sort, "sort", "Sort by messages or words")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default ~/.config/chatstats/config.toml)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Debug logging to stderr")

	return cmd
}

// loadConfig reads the config file. A file picked up from the default
// location is reported on stderr since it changes the output silently.
func loadConfig(fs afero.Fs, path string, log *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if path == "" && cfg.Path != "" {
		log.Warn("using default config file", "path", cfg.Path)
	}
	log.Debug("config loaded", "path", cfg.Path, "sort", cfg.Sort, "pretty", cfg.Pretty, "color", cfg.Color)
	return cfg, nil
}

func loadMessages(fs afero.Fs, path string, log *slog.Logger) ([]parse.Message, error) {
	text, err := transcript.Load(fs, path)
	if err != nil {
		return nil, err
	}
	log.Debug("transcript read", "path", path, "bytes", len(text))

	messages, err := parse.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Debug("messages extracted", "count", len(messages))
	return messages, nil
}

func renderYears(w io.Writer, groups []stats.YearGroup, opts render.Options, color bool, log *slog.Logger) error {
	for _, g := range groups {
		log.Debug("rendering year", "year", g.Year, "messages", len(g.Messages))
		if _, err := fmt.Fprintf(w, "\n%s\n", render.Heading(g.Year, color)); err != nil {
			return err
		}
		if err := render.Render(w, g.Stats, opts); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
