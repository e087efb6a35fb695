package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/apkgraph/internal/config"
	"github.com/matzehuels/apkgraph/pkg/deps"
	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/graph"
	"github.com/matzehuels/apkgraph/pkg/render/diagram"
	"github.com/matzehuels/apkgraph/pkg/render/nodelink"
	"github.com/matzehuels/apkgraph/pkg/render/tree"
	"github.com/matzehuels/apkgraph/pkg/source"
)

// Output formats.
const (
	formatText = "text"
	formatD2   = "d2"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
)

var formats = []string{formatText, formatD2, formatDOT, formatSVG, formatPNG, formatJSON}

// queryOpts holds the flags shared by the root query and export.
type queryOpts struct {
	pkg        string
	repo       string
	version    string
	testMode   bool
	reverse    bool
	asciiTree  bool
	showConfig bool
	format     string
	output     string
	timeout    time.Duration
}

func newQueryOpts() *queryOpts {
	return &queryOpts{version: source.Latest, format: formatText}
}

func (o *queryOpts) registerSource(fs *pflag.FlagSet) {
	fs.StringVar(&o.pkg, "package", "", "name of the package to analyze")
	fs.StringVar(&o.repo, "repo", "", "repository URL, index file or directory (test mode: fixture file)")
	fs.StringVar(&o.version, "version", o.version, "package version (default: latest)")
	fs.BoolVar(&o.testMode, "test-mode", false, "read --repo as a local test repository file")
	fs.BoolVar(&o.reverse, "reverse", false, "list packages that depend on --package")
}

func (o *queryOpts) registerOutput(fs *pflag.FlagSet) {
	fs.BoolVar(&o.asciiTree, "ascii-tree", false, "print an ASCII tree instead of a diagram")
	fs.BoolVar(&o.showConfig, "show-config", false, "print the configuration parameters first")
	fs.StringVar(&o.format, "format", o.format, "output format: "+strings.Join(formats, "|"))
	fs.StringVarP(&o.output, "output", "o", "", "output file (stdout if empty)")
}

// merge fills every flag the user did not set from cfg.
func (o *queryOpts) merge(cfg *config.Config, fs *pflag.FlagSet) {
	if cfg == nil {
		return
	}
	o.timeout = cfg.Timeout
	set := func(name string, apply func()) {
		if f := fs.Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
	set("package", func() { o.pkg = cfg.Package })
	set("repo", func() { o.repo = cfg.Repo })
	set("version", func() { o.version = cfg.Version })
	set("test-mode", func() { o.testMode = cfg.TestMode })
	set("reverse", func() { o.reverse = cfg.Reverse })
	set("ascii-tree", func() { o.asciiTree = cfg.AsciiTree })
}

// validate checks and normalizes the options before any graph work.
func (o *queryOpts) validate() error {
	var err error
	if o.pkg, err = apperrors.ValidatePackageName(o.pkg); err != nil {
		return err
	}
	if o.repo, err = apperrors.ValidateRepository(o.repo); err != nil {
		return err
	}
	if o.version, err = apperrors.ValidateVersion(o.version); err != nil {
		return err
	}
	if !slices.Contains(formats, o.format) {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"unsupported format %q (want %s)", o.format, strings.Join(formats, ", "))
	}
	if (o.format == formatSVG || o.format == formatPNG) && o.output == "" {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "format %s requires --output", o.format)
	}
	return nil
}

// printConfig writes the "Configuration parameters:" block.
func (o *queryOpts) printConfig(w io.Writer) {
	fmt.Fprintln(w, "Configuration parameters:")
	fmt.Fprintf(w, "package: %s\n", o.pkg)
	fmt.Fprintf(w, "repo: %s\n", o.repo)
	fmt.Fprintf(w, "test_mode: %t\n", o.testMode)
	fmt.Fprintf(w, "version: %s\n", o.version)
	fmt.Fprintf(w, "ascii_tree: %t\n", o.asciiTree)
	fmt.Fprintf(w, "reverse: %t\n", o.reverse)
}

func (c *CLI) runQuery(ctx context.Context, o *queryOpts) error {
	if err := o.validate(); err != nil {
		return err
	}
	if o.showConfig {
		o.printConfig(c.stdout)
	}

	src, err := c.loadSource(ctx, o)
	if err != nil {
		return err
	}

	g, err := c.resolve(ctx, src, o)
	if err != nil {
		return err
	}
	return c.emit(g, o)
}

// loadSource reads the repository index, with a spinner on interactive
// terminals for remote repositories.
func (c *CLI) loadSource(ctx context.Context, o *queryOpts) (*source.IndexSource, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var spin *Spinner
	if !o.testMode && isTerminal(c.stderr) {
		spin = newSpinner(ctx, c.stderr, "Loading "+o.repo+"...")
		spin.Start()
	}
	src, err := source.Load(ctx, o.repo, source.LoadOptions{TestMode: o.testMode, Timeout: o.timeout})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeSourceUnavailable, err, "cannot load repository")
	}
	prog.done("Loaded %d packages", src.Len())
	return src, nil
}

// resolve runs the forward or reverse query.
func (c *CLI) resolve(ctx context.Context, src deps.Source, o *queryOpts) (*graph.Graph, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var rootErr error
	opts := deps.Options{
		Logger: logger.Debugf,
		OnFailure: func(name string, err error) {
			if name == o.pkg && rootErr == nil {
				rootErr = err
			}
		},
	}

	var g *graph.Graph
	if o.reverse {
		g = deps.Reverse(ctx, o.pkg, src, deps.Options{Logger: logger.Debugf})
	} else {
		g = deps.Build(ctx, o.pkg, src, o.version, opts)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if errors.Is(rootErr, source.ErrNotFound) {
		return nil, rootNotFound(o, rootErr)
	}

	if o.reverse {
		prog.done("Found %d dependents", g.Len())
	} else {
		prog.done("Resolved %d packages", g.Len())
	}
	return g, nil
}

// rootNotFound reports a root package, or root version, missing from the
// repository. Other packages that fail to resolve stay empty leaves.
func rootNotFound(o *queryOpts, cause error) error {
	if o.version != source.Latest {
		return apperrors.Wrap(apperrors.ErrCodePackageNotFound, cause,
			"package %q version %s not found in repository", o.pkg, o.version)
	}
	return apperrors.Wrap(apperrors.ErrCodePackageNotFound, cause,
		"package %q not found in repository", o.pkg)
}

// emit renders g in the selected format to --output or stdout.
func (c *CLI) emit(g *graph.Graph, o *queryOpts) error {
	data, err := render(g, o)
	if err != nil {
		return err
	}
	if o.output == "" {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", o.output)
	}
	printSuccess(c.stderr, "Wrote %s output", o.format)
	printFile(c.stderr, o.output)
	return nil
}

func render(g *graph.Graph, o *queryOpts) ([]byte, error) {
	switch o.format {
	case formatJSON:
		var b strings.Builder
		if err := graph.WriteJSON(g, &b); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case formatDOT, formatSVG, formatPNG:
		dot := nodelink.ToDOT(g, nodelink.Options{Root: o.pkg, Reverse: o.reverse})
		switch o.format {
		case formatSVG:
			return nodelink.RenderSVG(dot)
		case formatPNG:
			return nodelink.RenderPNG(dot)
		}
		return []byte(dot), nil
	}

	if o.reverse {
		if g.Len() == 0 {
			return []byte(tree.NoDependents(o.pkg) + "\n"), nil
		}
		if o.asciiTree && o.format == formatText {
			return lines(tree.RenderReverse(g, o.pkg)), nil
		}
		return []byte(diagram.RenderDirection(g, o.pkg, diagram.Reverse)), nil
	}
	if o.asciiTree && o.format == formatText {
		return lines(tree.Render(g, o.pkg)), nil
	}
	return []byte(diagram.Render(g, o.pkg)), nil
}

func lines(ls []string) []byte {
	return []byte(strings.Join(ls, "\n") + "\n")
}
