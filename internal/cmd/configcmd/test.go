package configcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/api"
	"github.com/open-cli-collective/bbcode-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/bbcode-cli/internal/config"
	"github.com/open-cli-collective/bbcode-cli/internal/view"
)

const testTimeout = 10 * time.Second

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with the configured content service",
		Long:  `Test that bbc can reach the content service used by [quote] with the current configuration.`,
		Example: `  # Test connection
  bbc config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			output, _ := cmd.Flags().GetString("output")
			cfg, err := cmdutil.LoadConfig(configPath(cmd))
			if err != nil {
				return err
			}
			return runTest(cmd.Context(), cfg, view.NewRenderer(view.Format(output), noColor))
		},
	}

	return cmd
}

func runTest(ctx context.Context, cfg *config.Config, r *view.Renderer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.ContentURL == "" {
		r.Error("No content service configured")
		r.RenderText("\nSet one with: bbc init, or BBC_CONTENT_URL")
		return fmt.Errorf("content_url is not set")
	}

	r.RenderKeyValue("content_url", cfg.ContentURL)

	ctx, cancel := context.WithTimeout(ctx, testTimeout)
	defer cancel()

	if err := api.NewClient(cfg.ContentURL, cfg.ContentToken).Verify(ctx); err != nil {
		r.Error(err.Error())
		r.RenderText("\nCheck your settings with: bbc config show")
		r.RenderText("Reconfigure with: bbc init")
		return err
	}

	r.Success("Content service reachable")
	if cfg.ContentToken != "" {
		r.Success("Token accepted")
	}

	return nil
}
