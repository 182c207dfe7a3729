// Package cli provides the command-line interface for svgtint.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/svgtint/internal/config"
	"github.com/jmylchreest/svgtint/internal/recolour"
	"github.com/jmylchreest/svgtint/internal/source"
	"github.com/jmylchreest/svgtint/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose   bool
	quiet     bool
	timeout   time.Duration
	cacheDir  string
	noCache   bool
	named     bool
	fallback  string
	classExpr string
}

// NewRootCmd builds the svgtint command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "svgtint",
		Short: "Namespace and recolour SVG documents",
		Long: `svgtint loads SVG documents, scopes their classes and ids under a prefix so several
can share one page, and discovers every colour they use as an editable palette.

Colours are normalised to #RRGGBB. Recolouring always starts from the loaded document,
so edits never compound.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "timeout for fetching a document")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "cache fetched documents in this directory")
	flags.BoolVar(&opts.noCache, "no-cache", false, "do not read or write the document cache")
	flags.BoolVar(&opts.named, "named-colours", false, "resolve keyword colours such as fill=\"red\" into the palette")
	flags.StringVar(&opts.fallback, "fallback-fill", config.DefaultFallbackFill, "fill given to paths without a fill or class")
	flags.StringVar(&opts.classExpr, "class-pattern", config.DefaultClassPattern, "regular expression selecting the stylesheet classes to prefix")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoadCmd(opts))
	rootCmd.AddCommand(newRecolourCmd(opts))
	rootCmd.AddCommand(newGalleryCmd(opts))

	return rootCmd
}

// Execute runs the root command. It is a convenience for callers that do not need the command.
func Execute() error {
	return NewRootCmd().Execute()
}

// runtimeEnv is what a command needs to load documents.
type runtimeEnv struct {
	cfg      config.Config
	logger   hclog.Logger
	fetcher  *source.Client
	pipeline *recolour.Pipeline
}

// newRuntimeEnv resolves configuration (flags over environment over defaults) and
// builds the logger, fetcher and pipeline from it.
func newRuntimeEnv(cmd *cobra.Command, opts *globalOptions) (*runtimeEnv, error) {
	cfg, err := config.FromEnv(config.Default())
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = opts.cacheDir
		cfg.UseCache = opts.cacheDir != ""
	}
	if opts.noCache {
		cfg.UseCache = false
	}
	if flags.Changed("named-colours") {
		cfg.ResolveNamedColours = opts.named
	}
	if flags.Changed("fallback-fill") {
		cfg.FallbackFill = opts.fallback
	}
	if flags.Changed("class-pattern") {
		cfg.ClassPattern = opts.classExpr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts)

	classes, err := cfg.ClassRegexp()
	if err != nil {
		return nil, err
	}
	pipeline, err := recolour.New(recolour.Options{
		ClassPattern:        classes,
		FallbackFill:        cfg.FallbackFill,
		ResolveNamedColours: cfg.ResolveNamedColours,
		Logger:              logger.Named("pipeline"),
	})
	if err != nil {
		return nil, err
	}

	var cache *source.Cache
	if cfg.UseCache {
		cache, err = source.NewCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
	}

	fetcher := source.New(source.Options{
		Timeout:           cfg.Timeout,
		MaxBytes:          cfg.MaxBytes,
		UserAgent:         cfg.UserAgent,
		AllowPrivateHosts: cfg.AllowPrivateHosts,
		Cache:             cache,
		Logger:            logger,
	})

	logger.Trace("configuration resolved", "timeout", cfg.Timeout, "cache", cfg.UseCache, "class_pattern", cfg.ClassPattern)

	return &runtimeEnv{cfg: cfg, logger: logger, fetcher: fetcher, pipeline: pipeline}, nil
}

// newLogger returns the command logger. Verbose enables debug output; quiet limits it to errors.
func newLogger(w io.Writer, opts *globalOptions) hclog.Logger {
	level := hclog.Info
	switch {
	case opts.quiet:
		level = hclog.Error
	case opts.verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "svgtint",
		Output: w,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
