// Package tags provides the tags command.
package tags

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbcode-cli/internal/view"
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
	_ "github.com/open-cli-collective/bbcode-cli/pkg/bbcode/tags" // registers the catalog module
)

type tagsOptions struct {
	blockOnly bool

	global cmdutil.GlobalOptions
	stdout io.Writer
}

type tagInfo struct {
	Name        string `json:"name"`
	Shape       string `json:"shape"`
	Block       bool   `json:"block"`
	Fallback    bool   `json:"fallback"`
	Description string `json:"description"`
}

// NewCmdTags creates the tags command.
func NewCmdTags() *cobra.Command {
	opts := &tagsOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tag catalog",
		Long:  `List every registered tag definition in precedence order.`,
		Example: `  bbc tags
  bbc tags --block -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			if err := bbcode.Default.AutoDiscover(); err != nil {
				return err
			}
			return runTags(opts, bbcode.Default)
		},
	}

	cmd.Flags().BoolVar(&opts.blockOnly, "block", false, "Only list block-level tags")

	return cmd
}

func runTags(opts *tagsOptions, r *bbcode.Registry) error {
	if err := view.ValidateFormat(opts.global.Output); err != nil {
		return err
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	renderer := view.NewRenderer(view.Format(opts.global.Output), opts.global.NoColor)
	renderer.SetWriter(opts.stdout)

	var infos []tagInfo
	for _, d := range r.Candidates() {
		if opts.blockOnly && !d.Shape.IsBlock() {
			continue
		}
		infos = append(infos, tagInfo{
			Name:        d.Name,
			Shape:       d.Shape.String(),
			Block:       d.Shape.IsBlock(),
			Fallback:    d.Fallback,
			Description: d.Description,
		})
	}

	if len(infos) == 0 {
		renderer.Warning("No tags registered")
		return nil
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(infos)
	}

	headers := []string{"NAME", "SHAPE", "BLOCK", "DESCRIPTION"}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		block := ""
		if info.Block {
			block = "yes"
		}
		name := info.Name
		if info.Fallback {
			name += "*"
		}
		rows = append(rows, []string{name, info.Shape, block, view.Truncate(strings.TrimSpace(info.Description), 70)})
	}
	renderer.RenderTable(headers, rows)
	return nil
}
