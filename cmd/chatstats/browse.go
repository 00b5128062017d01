package main

import (
	"errors"
	"path/filepath"

	"github.com/Zuo-Peng/chatstats/internal/logging"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/Zuo-Peng/chatstats/internal/tui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errNotTerminal = errors.New("browse needs an interactive terminal")

func browseCmd(fs afero.Fs) *cobra.Command {
	var sort render.SortBy
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "browse <path>",
		Short: "Browse per-author stats by year in an interactive panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if !isTerminal(cmd.OutOrStdout()) {
				return errNotTerminal
			}

			log := logging.New(cmd.ErrOrStderr(), verbose)

			cfg, err := loadConfig(fs, configPath, log)
			if err != nil {
				return err
			}
			by := cfg.Sort
			if cmd.Flags().Changed("sort") {
				by = sort
			}

			messages, err := loadMessages(fs, args[0], log)
			if err != nil {
				return err
			}

			return tui.Run(filepath.Base(args[0]), messages, by)
		},
	}

	cmd.Flags().Var(&sort, "sort", "Initial sort, messages or words")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default ~/.config/chatstats/config.toml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	return cmd
}
