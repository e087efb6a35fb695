// Package cli implements the apkgraph command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apkgraph/internal/config"
	"github.com/matzehuels/apkgraph/internal/tracing"
	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
)

const appName = "apkgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	cfg        *config.Config
	tracer     *tracing.Provider
}

// New creates a CLI writing results to stdout and diagnostics to stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(stderr, level),
		stdout: stdout,
		stderr: stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root command. Run directly it answers a
// dependency query; serve, export, version and completion are subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	opts := newQueryOpts()

	root := &cobra.Command{
		Use:   appName + " --package NAME --repo LOCATION",
		Short: "Show the dependency graph of an Alpine package",
		Long: `apkgraph reads an APKINDEX repository index, resolves the transitive
dependencies of a package and prints them as a tree or a D2 diagram. With
--reverse it lists every package that depends on the given one.

Examples:
  apkgraph --package curl --repo https://dl-cdn.alpinelinux.org/alpine/v3.20/main/x86_64
  apkgraph --package musl --repo ./APKINDEX.tar.gz --reverse --ascii-tree
  apkgraph --package app --repo testdata/repo.toml --test-mode --format svg -o app.svg`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.merge(c.cfg, cmd.Flags())
			return c.runQuery(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML, YAML or JSON)")
	opts.registerSource(root.Flags())
	opts.registerOutput(root.Flags())

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: log level, configuration and tracing.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid configuration")
	}
	c.cfg = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = LogInfo
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	ctx := withLogger(cmd.Context(), c.Logger)
	if c.tracer == nil {
		tp, err := tracing.Init(ctx, tracing.Config{
			ServiceName: appName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			c.Logger.Warn("tracing disabled", "err", err)
		} else {
			c.tracer = tp
			if tp.Enabled() {
				tracing.NewHooks(tp.Tracer()).Register()
				c.Logger.Debug("tracing enabled", "endpoint", cfg.Tracing.Endpoint)
			}
		}
	}
	cmd.SetContext(ctx)
	return nil
}

// Close flushes tracing. It is safe to call when no command ran.
func (c *CLI) Close(ctx context.Context) error {
	if c.tracer == nil {
		return nil
	}
	return c.tracer.Shutdown(ctx)
}

// FormatError renders err as the one-line diagnostic printed on stderr.
func FormatError(err error) string {
	msg := apperrors.UserMessage(err)
	switch {
	case apperrors.IsValidation(err):
		return "Validation error: " + msg
	case apperrors.Is(err, apperrors.ErrCodeFileNotFound):
		return "File error: " + msg
	default:
		return "Error: " + msg
	}
}
