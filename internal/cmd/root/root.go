// Package root provides the root command for the bbc CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/internal/cmd/completion"
	"github.com/open-cli-collective/bbcode-cli/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/bbcode-cli/internal/cmd/init"
	"github.com/open-cli-collective/bbcode-cli/internal/cmd/render"
	"github.com/open-cli-collective/bbcode-cli/internal/cmd/tags"
	"github.com/open-cli-collective/bbcode-cli/internal/cmd/validate"
	"github.com/open-cli-collective/bbcode-cli/internal/version"
)

// NewCmdRoot creates the root command for bbc.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bbc",
		Short: "Render and validate bbcode markup",
		Long: `bbc turns bracket-tag markup into HTML or plain text.

It renders posts for display, validates them before they are saved,
and lists the tags it understands.

Get started by running: bbc init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/bbc/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Set version template
	cmd.SetVersionTemplate(version.Info() + "\n")

	// Subcommands
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(validate.NewCmdValidate())
	cmd.AddCommand(tags.NewCmdTags())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
