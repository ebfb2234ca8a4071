// Package main implements dochooks, a code generator that makes hook
// annotations in method doc comments available at run time.
//
// Go binaries carry no comments, so dochooks reads them at build time. It
// loads the named packages, finds every type whose methods are documented
// with @action, @filter or @shortcode markers, and writes a DocHooks method
// per type into dochooks_gen.go. dochooks.Registrar reads those methods when
// registering an object.
//
// Generation flow:
//
//  1. Read go.mod, .dochooks.yaml and DOCHOOKS_* variables
//  2. Load packages, skipping gitignored and excluded directories
//  3. Walk each named type's pointer method set and match annotations
//  4. Write one gofmt'd file per package, remove stale ones
//
// Usage:
//
//	//go:generate go run github.com/iVampireSP/dochooks/cmd/dochooks generate
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iVampireSP/dochooks/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// options holds command-line flags.
type options struct {
	config  string
	output  string
	dryRun  bool
	verbose bool
	watch   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dochooks: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dochooks",
		Short: "Generate hook metadata from method doc comments",
		Long: `dochooks scans Go packages for methods annotated with @action, @filter or
@shortcode in their doc comments and generates a DocHooks method for each
annotated type, so dochooks.Registrar can register them at run time.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.config, "config", "", "config file (default .dochooks.yaml in the module root)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGenerateCmd(opts))
	return root
}

func newGenerateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Generate DocHooks methods",
		Long: `Generate a DocHooks method for every type with annotated methods.

Examples:
  # Current package, from a go:generate directive
  dochooks generate

  # Every package in the module
  dochooks generate ./...

  # Print instead of writing
  dochooks generate --dry-run ./...

  # Regenerate on change
  dochooks generate --watch ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "generated file name in each package")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print generated code without writing")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when sources change")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, patterns []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	cfg, err := BuildConfig(dir, opts.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.output
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := logging.NewLogger(&cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	logger.Debug("config loaded",
		zap.String("module", cfg.Module),
		zap.String("root", cfg.Root),
		zap.String("output", cfg.Output),
		zap.Strings("exclude", cfg.Exclude))

	gen := NewGenerator(cfg, logger, opts.dryRun, cmd.OutOrStdout())

	if opts.watch {
		return NewWatcher(cfg, gen, logger, patterns...).Run(cmd.Context())
	}

	res, err := gen.Run(patterns...)
	if err != nil {
		return err
	}
	if !opts.dryRun {
		logger.Info("generated",
			zap.Int("packages", res.Packages),
			zap.Int("types", res.Types),
			zap.Int("written", res.Written),
			zap.Int("removed", res.Removed))
	}
	return nil
}
