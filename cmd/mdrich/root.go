package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/csams/mdrich/internal/config"
	"github.com/csams/mdrich/internal/htmlfrag"
	"github.com/csams/mdrich/internal/logging"
	"github.com/csams/mdrich/internal/markdown"
)

// rootOptions holds the global flags and the lazily loaded configuration
type rootOptions struct {
	configDir string
	logLevel  string

	manager *config.ConfigManager
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mdrich",
		Short: "Render markdown as styled rich text",
		Long: `Render markdown documents into styled rich text with copy affordances.

The rendered text can be printed as plain text, JSON runs or ANSI escapes,
or browsed in a terminal viewer where copy links place the document or a
code block on the clipboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default is the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")

	cmd.AddCommand(
		newRenderCmd(opts),
		newViewCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// configManager returns the manager for the selected config directory
func (o *rootOptions) configManager() *config.ConfigManager {
	if o.manager != nil {
		return o.manager
	}
	dir := o.configDir
	if dir == "" {
		dir = config.DefaultDir()
	}
	o.manager = config.NewConfigManager(dir)
	return o.manager
}

// load reads the configuration, creating it with defaults when missing
func (o *rootOptions) load() (*config.Config, error) {
	cm := o.configManager()
	if err := cm.Load(); err != nil {
		return nil, err
	}
	return cm.GetConfig(), nil
}

// newLogger builds a logger writing to w. The --log-level flag wins over the config file.
func (o *rootOptions) newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	return logging.New(w, level)
}

func buildRenderer(cfg *config.Config, logger *log.Logger) *markdown.Renderer {
	opts := []markdown.Option{
		markdown.WithLogger(logger),
		markdown.WithFallbackUnsupported(cfg.Render.FallbackUnsupported),
	}
	if cfg.Render.MaxDepth > 0 {
		opts = append(opts, markdown.WithMaxDepth(cfg.Render.MaxDepth))
	}
	if cfg.Render.HTML {
		opts = append(opts, markdown.WithHTMLRenderer(htmlfrag.New()))
	}
	return markdown.NewRenderer(opts...)
}

// readSource reads the markdown named by args. No argument or "-" reads stdin.
func readSource(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to read stdin")
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to read %s", args[0])
	}
	return data, args[0], nil
}
