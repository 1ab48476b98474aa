package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/csams/mdrich/internal/export"
	"github.com/csams/mdrich/internal/markdown"
)

// ErrWidthFormat is returned when --width is combined with a non-text format
var ErrWidthFormat = errors.New("--width only applies to text output")

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var format string
	var width int

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render markdown to text, JSON or ANSI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if width > 0 && f != export.FormatText {
				return errors.Wrapf(ErrWidthFormat, "format %s", f)
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := opts.newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			source, name, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			logger.Debug("Rendering", "source", name, "bytes", len(source), "format", f)

			rt, err := buildRenderer(cfg, logger).Render(markdown.Parse(source))
			if err != nil {
				return errors.Wrapf(err, "failed to render %s", name)
			}
			if width > 0 {
				return export.WriteWrapped(cmd.OutOrStdout(), rt, width)
			}
			return export.Write(cmd.OutOrStdout(), rt, f)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "wrap text output at this many columns (0 disables wrapping)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatText), "output format: text, json or ansi")
	return cmd
}
