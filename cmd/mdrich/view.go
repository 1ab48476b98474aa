package main

import (
	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/csams/mdrich/internal/logging"
	"github.com/csams/mdrich/internal/markdown"
	"github.com/csams/mdrich/internal/ui"
)

// newScreen is replaced in tests
var newScreen = tcell.NewScreen

func newViewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view [file|-]",
		Short: "Browse rendered markdown in the terminal",
		Long: `Browse rendered markdown in the terminal.

Activate a "copy" link with Enter or a mouse click to place the whole
document or the code block below it on the clipboard. Press ? for help.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			source, name, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			// The terminal belongs to the viewer, so logs go to a file.
			logger := logging.Discard()
			if path := opts.manager.LogFile(); path != "" {
				f, err := logging.OpenFile(path)
				if err != nil {
					return err
				}
				defer f.Close()
				if logger, err = opts.newLogger(f, cfg); err != nil {
					return err
				}
			}

			rt, err := buildRenderer(cfg, logger).Render(markdown.Parse(source))
			if err != nil {
				return errors.Wrapf(err, "failed to render %s", name)
			}

			screen, err := newScreen()
			if err != nil {
				return errors.Wrap(err, "failed to open terminal")
			}
			logger.Info("Starting viewer", "source", name, "runs", len(rt))
			viewer := ui.NewViewer(screen, string(source), rt,
				ui.WithName(name),
				ui.WithLogger(logger),
				ui.WithSearch(cfg.Search.MinScore, cfg.Search.CaseSensitive),
			)
			return viewer.Run()
		},
	}
}
