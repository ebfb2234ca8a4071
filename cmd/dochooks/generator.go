package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Result summarizes one generation pass.
type Result struct {
	Packages int // packages scanned
	Types    int // types given a DocHooks method
	Written  int
	Removed  int
}

// Generator runs scan and codegen, then writes or prints the output.
type Generator struct {
	cfg     *Config
	scanner *Scanner
	codegen *CodeGen
	logger  *zap.Logger
	dryRun  bool
	out     io.Writer // dry-run destination
}

// NewGenerator creates a generator for the module described by cfg.
func NewGenerator(cfg *Config, logger *zap.Logger, dryRun bool, out io.Writer) *Generator {
	return &Generator{
		cfg:     cfg,
		scanner: NewScanner(cfg, LoadGitignore(cfg.Root), logger),
		codegen: NewCodeGen(cfg),
		logger:  logger,
		dryRun:  dryRun,
		out:     out,
	}
}

// Run generates DocHooks for the packages matching patterns.
func (g *Generator) Run(patterns ...string) (Result, error) {
	var res Result

	pkgs, err := g.scanner.Scan(patterns...)
	if err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	res.Packages = len(pkgs)

	for _, pkg := range pkgs {
		res.Types += len(pkg.Types)
		g.logger.Debug("package scanned",
			zap.String("package", pkg.PkgPath),
			zap.Int("types", len(pkg.Types)),
			zap.Int("annotations", pkg.Annotations()))
	}

	files, err := g.codegen.Generate(pkgs)
	if err != nil {
		return res, fmt.Errorf("generate: %w", err)
	}

	for _, f := range files {
		if g.dryRun {
			if f.Remove {
				fmt.Fprintf(g.out, "// === %s (remove) ===\n", f.Path)
			} else {
				fmt.Fprintf(g.out, "// === %s ===\n%s\n", f.Path, f.Content)
			}
			continue
		}

		if f.Remove {
			if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
				return res, fmt.Errorf("remove %s: %w", f.Path, err)
			}
			g.logger.Info("removed stale output", zap.String("path", f.Path))
			res.Removed++
			continue
		}

		g.logger.Debug("writing", zap.String("path", f.Path))
		if err := os.WriteFile(f.Path, f.Content, 0644); err != nil {
			return res, fmt.Errorf("write %s: %w", f.Path, err)
		}
		res.Written++
	}
	return res, nil
}
