// Package cmdutil holds the setup shared by commands that parse content.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/bbcode-cli/api"
	"github.com/open-cli-collective/bbcode-cli/internal/config"
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode/tags"
)

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Debug      bool

	outputSet bool
}

// Globals reads the persistent flags from cmd.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Debug, _ = cmd.Flags().GetBool("debug")
	g.outputSet = cmd.Flags().Changed("output")
	return g
}

// ApplyConfig fills in defaults the config file sets and the command line
// did not.
func (g *GlobalOptions) ApplyConfig(cfg *config.Config) {
	if !g.outputSet && cfg.OutputFormat != "" {
		g.Output = cfg.OutputFormat
	}
}

// LoadConfig loads and validates the configuration at path, or at the
// default path when empty.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'bbc init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'bbc init' to configure)", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger: development output with --debug,
// production JSON at warn level otherwise.
func NewLogger(debug bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if debug {
		z, err = zap.NewDevelopment()
	} else {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		z, err = zc.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return z.Sugar(), nil
}

// Env is everything a parsing command needs.
type Env struct {
	Engine  *bbcode.Engine
	Context *bbcode.ParseContext
	Log     *zap.SugaredLogger
}

// NewEnv wires the engine and its collaborators from cfg. maxDepth overrides
// the configured depth when positive.
func NewEnv(cfg *config.Config, log *zap.SugaredLogger, maxDepth int) *Env {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if maxDepth <= 0 {
		maxDepth = cfg.MaxDepth
	}

	opts := []bbcode.Option{bbcode.WithLogger(log)}
	if maxDepth > 0 {
		opts = append(opts, bbcode.WithMaxDepth(maxDepth))
	}

	pc := &bbcode.ParseContext{
		Bindings:    map[string]map[string]string{},
		MediaURL:    cfg.MediaURL,
		Copyright:   cfg.Copyright,
		Highlighter: tags.NewChromaHighlighter(cfg.CodeStyle),
	}
	if cfg.ContentURL != "" {
		pc.Content = api.NewClient(cfg.ContentURL, cfg.ContentToken)
	}

	log.Debugw("engine ready",
		"max_depth", maxDepth,
		"media_url", cfg.MediaURL,
		"content_lookup", cfg.ContentURL != "",
		"code_style", cfg.CodeStyle,
	)

	return &Env{
		Engine:  bbcode.NewEngine(bbcode.Default, opts...),
		Context: pc,
		Log:     log,
	}
}
