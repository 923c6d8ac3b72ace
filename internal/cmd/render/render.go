// Package render provides the render command.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbcode-cli/internal/view"
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

type renderOptions struct {
	text       bool
	strict     bool
	sanitize   bool
	format     string
	namespaces []string
	vars       []string
	maxDepth   int

	global cmdutil.GlobalOptions
	stdin  io.Reader // For testing; defaults to os.Stdin
	stdout io.Writer
	stderr io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render bbcode to HTML, text or markdown",
		Long: `Render bbcode content. Files are processed concurrently and printed in
argument order. With no file, or "-", content is read from stdin.

Content problems never stop a normal render: the offending fragment is kept
as escaped text behind an error marker and the issue is reported on stderr.
With --strict the first issue aborts and the command fails.`,
		Example: `  # Render a file
  bbc render post.bb

  # Plain text for a search index
  bbc render --text post.bb

  # Resolve [[site:home]] references
  bbc render --ns site --var site:home=https://example.com post.bb

  # Markdown from stdin
  echo '[b]hi[/b]' | bbc render --format markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = env.Log.Sync() }()
			return runRender(cmd.Context(), args, opts, env)
		},
	}

	cmd.Flags().BoolVar(&opts.text, "text", false, "Render plain text (same as --format text)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on the first issue")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "Sanitize the final HTML")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatHTML, "Output format: html, text, markdown")
	cmd.Flags().StringSliceVar(&opts.namespaces, "ns", nil, "Active variable namespace (repeatable)")
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "Variable binding ns:key=value (repeatable)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Maximum tag nesting depth (default from config, else 64)")

	return cmd
}

func setup(opts *renderOptions) (*cmdutil.Env, error) {
	cfg, err := cmdutil.LoadConfig(opts.global.ConfigPath)
	if err != nil {
		return nil, err
	}
	log, err := cmdutil.NewLogger(opts.global.Debug)
	if err != nil {
		return nil, err
	}
	opts.global.ApplyConfig(cfg)
	if len(opts.namespaces) == 0 {
		opts.namespaces = cfg.Namespaces
	}
	return cmdutil.NewEnv(cfg, log, opts.maxDepth), nil
}

type result struct {
	name   string
	output string
	issues bbcode.Issues
}

func runRender(ctx context.Context, args []string, opts *renderOptions, env *cmdutil.Env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	if opts.stderr == nil {
		opts.stderr = os.Stderr
	}
	if opts.text {
		opts.format = FormatText
	}
	switch opts.format {
	case FormatHTML, FormatText, FormatMarkdown:
	default:
		return fmt.Errorf("invalid format %q: must be html, text or markdown", opts.format)
	}

	bindings, err := cmdutil.ParseVars(opts.vars)
	if err != nil {
		return err
	}
	pc := *env.Context
	pc.Bindings = bindings

	inputs, err := cmdutil.ReadInputs(args, opts.stdin)
	if err != nil {
		return err
	}

	parseOpts := bbcode.Options{
		Namespaces:   opts.namespaces,
		Strict:       opts.strict,
		AutoDiscover: true,
		AsText:       opts.format == FormatText,
		Context:      &pc,
	}

	results, err := cmdutil.ForEach(ctx, inputs, func(ctx context.Context, in cmdutil.Input) (result, error) {
		out, issues := env.Engine.Parse(ctx, in.Content, parseOpts)
		env.Log.Debugw("rendered", "file", in.Name, "bytes", len(out), "issues", len(issues))
		if issues.HasFatal() {
			return result{name: in.Name, issues: issues}, nil
		}
		out, err := finish(out, opts)
		if err != nil {
			return result{}, err
		}
		return result{name: in.Name, output: out, issues: issues}, nil
	})
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.global.Output), opts.global.NoColor)
	renderer.SetWriter(opts.stderr)

	failed := 0
	for _, res := range results {
		if len(res.issues) > 0 {
			if err := renderer.RenderIssues(res.name, res.issues); err != nil {
				return err
			}
		}
		if res.issues.HasFatal() {
			failed++
			continue
		}
		fmt.Fprintln(opts.stdout, res.output)
	}

	if failed > 0 {
		renderer.Error(fmt.Sprintf("%d of %d input(s) discarded", failed, len(results)))
		return fmt.Errorf("%d of %d input(s) failed strict rendering", failed, len(results))
	}
	return nil
}

// finish applies sanitizing and format conversion to rendered HTML.
func finish(out string, opts *renderOptions) (string, error) {
	if opts.format == FormatText {
		return out, nil
	}
	if opts.sanitize {
		out = bluemonday.UGCPolicy().Sanitize(out)
	}
	if opts.format == FormatMarkdown {
		md, err := htmltomarkdown.ConvertString(out)
		if err != nil {
			return "", fmt.Errorf("failed to convert to markdown: %w", err)
		}
		out = strings.TrimSpace(md)
	}
	return out, nil
}
