// Package validate provides the validate command.
package validate

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbcode-cli/internal/view"
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

type validateOptions struct {
	namespaces []string
	maxDepth   int

	global cmdutil.GlobalOptions
	stdin  io.Reader // For testing; defaults to os.Stdin
	stdout io.Writer
}

// NewCmdValidate creates the validate command.
func NewCmdValidate() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check bbcode content before saving it",
		Long: `Parse content in strict mode and report the first problem in each input.
Nothing is rendered. The command exits non-zero when any input has an issue.`,
		Example: `  # Check a single post
  bbc validate post.bb

  # Check many files, JSON report
  bbc validate -o json posts/*.bb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)

			cfg, err := cmdutil.LoadConfig(opts.global.ConfigPath)
			if err != nil {
				return err
			}
			log, err := cmdutil.NewLogger(opts.global.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			opts.global.ApplyConfig(cfg)
			if len(opts.namespaces) == 0 {
				opts.namespaces = cfg.Namespaces
			}
			return runValidate(cmd.Context(), args, opts, cmdutil.NewEnv(cfg, log, opts.maxDepth))
		},
	}

	cmd.Flags().StringSliceVar(&opts.namespaces, "ns", nil, "Active variable namespace (repeatable)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Maximum tag nesting depth (default from config, else 64)")

	return cmd
}

type report struct {
	name   string
	issues bbcode.Issues
}

func runValidate(ctx context.Context, args []string, opts *validateOptions, env *cmdutil.Env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	if err := view.ValidateFormat(opts.global.Output); err != nil {
		return err
	}

	inputs, err := cmdutil.ReadInputs(args, opts.stdin)
	if err != nil {
		return err
	}

	parseOpts := bbcode.Options{
		Namespaces:   opts.namespaces,
		Strict:       true,
		AutoDiscover: true,
		Context:      env.Context,
	}

	reports, err := cmdutil.ForEach(ctx, inputs, func(ctx context.Context, in cmdutil.Input) (report, error) {
		_, issues := env.Engine.Parse(ctx, in.Content, parseOpts)
		env.Log.Debugw("validated", "file", in.Name, "issues", len(issues))
		return report{name: in.Name, issues: issues}, nil
	})
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.global.Output), opts.global.NoColor)
	renderer.SetWriter(opts.stdout)

	var failed []report
	for _, rep := range reports {
		if len(rep.issues) > 0 {
			failed = append(failed, rep)
		}
	}

	if len(failed) == 0 {
		if renderer.Format() == view.FormatJSON {
			return renderer.RenderJSON([]struct{}{})
		}
		renderer.Success(fmt.Sprintf("%d input(s) valid", len(reports)))
		return nil
	}

	if renderer.Format() == view.FormatJSON {
		var all []interface{}
		for _, rep := range failed {
			for _, issue := range rep.issues {
				all = append(all, view.FileIssue{File: rep.name, Issue: issue})
			}
		}
		if err := renderer.RenderJSON(all); err != nil {
			return err
		}
	} else {
		for _, rep := range failed {
			if err := renderer.RenderIssues(rep.name, rep.issues); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%d of %d input(s) have issues", len(failed), len(reports))
}
