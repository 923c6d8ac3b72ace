package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/bbcode-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current bbc configuration with value source indicators.`,
		Example: `  # Show current config
  bbc config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(configPath(cmd), noColor, os.Stdout)
		},
	}

	return cmd
}

func runShow(path string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Fprintf(w, "%-16s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		_, _ = fmt.Fprint(w, maskSecret(label, value))

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "-"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "-"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Media URL", cfg.MediaURL, fileCfg.MediaURL, "BBC_MEDIA_URL")
	printField("Content URL", cfg.ContentURL, fileCfg.ContentURL, "BBC_CONTENT_URL", "CONTENT_API_URL")
	printField("Content Token", cfg.ContentToken, fileCfg.ContentToken, "BBC_CONTENT_TOKEN", "CONTENT_API_TOKEN")
	printField("Code Style", cfg.CodeStyle, fileCfg.CodeStyle, "BBC_CODE_STYLE")
	printField("Max Depth", depthString(cfg.MaxDepth), depthString(fileCfg.MaxDepth), "BBC_MAX_DEPTH")
	printField("Namespaces", strings.Join(cfg.Namespaces, ","), strings.Join(fileCfg.Namespaces, ","), "BBC_NAMESPACES")
	printField("Copyright", cfg.Copyright, fileCfg.Copyright)
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat)

	_, _ = fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", path)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

func depthString(depth int) string {
	if depth == 0 {
		return ""
	}
	return strconv.Itoa(depth)
}

// maskSecret hides the middle of token values.
func maskSecret(label, value string) string {
	if !strings.Contains(strings.ToLower(label), "token") {
		return value
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
