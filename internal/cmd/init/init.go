// Package init provides the init command for bbc.
package init

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/api"
	"github.com/open-cli-collective/bbcode-cli/internal/config"
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode/tags"
)

const verifyTimeout = 10 * time.Second

type initOptions struct {
	mediaURL   string
	contentURL string
	noVerify   bool
	configPath string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bbc configuration",
		Long: `Initialize bbc for your site.

This command will guide you through setting the media URL that image and
download paths are resolved against, the content service used by [quote],
and the code highlighting style. The configuration will be saved to
~/.config/bbc/config.yml.

Every setting is optional. Without a content service, quotes render
without author details.`,
		Example: `  # Interactive setup
  bbc init

  # Pre-populate URLs
  bbc init --media-url https://cdn.example.com --content-url https://api.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.mediaURL, "media-url", "", "Base URL for [img] and [download] paths")
	cmd.Flags().StringVar(&opts.contentURL, "content-url", "", "Content service URL for [quote] lookups")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip connection verification")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		MediaURL:   opts.mediaURL,
		ContentURL: opts.contentURL,
		CodeStyle:  tags.DefaultCodeStyle,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Media URL (optional)").
				Description("Relative [img] and [download] paths are joined to this").
				Placeholder("https://cdn.example.com/media").
				Value(&cfg.MediaURL),

			huh.NewInput().
				Title("Content service URL (optional)").
				Description("Used by [quote=id] to look up the quoted author").
				Placeholder("https://api.example.com").
				Value(&cfg.ContentURL),

			huh.NewInput().
				Title("Content service token (optional)").
				Description("Sent as a bearer token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.ContentToken),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Code style").
				Description("Highlighting style for [code] blocks").
				Placeholder(tags.DefaultCodeStyle).
				Value(&cfg.CodeStyle),

			huh.NewInput().
				Title("Copyright holder (optional)").
				Description("Shown under highlighted code blocks").
				Value(&cfg.Copyright),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify connection unless skipped or not configured
	if !opts.noVerify && cfg.ContentURL != "" {
		fmt.Print("Verifying content service... ")
		if err := verifyConnection(cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  echo '[b]hello[/b]' | bbc render")
	fmt.Println("  bbc tags")

	return nil
}

func verifyConnection(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()
	return api.NewClient(cfg.ContentURL, cfg.ContentToken).Verify(ctx)
}
