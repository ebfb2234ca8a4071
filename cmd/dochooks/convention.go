package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	configFileName = ".dochooks.yaml"
	envPrefix      = "DOCHOOKS_"
)

// BuildConfig builds a Config from go.mod, the config file and the environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (DOCHOOKS_OUTPUT, DOCHOOKS_EXCLUDE, DOCHOOKS_LOG_LEVEL, ...)
//  2. configPath, or .dochooks.yaml in the module root when configPath is empty
//  3. Defaults
//
// An explicit configPath must exist; the default file is optional.
func BuildConfig(dir, configPath string) (*Config, error) {
	root, err := findModuleRoot(dir)
	if err != nil {
		return nil, err
	}
	module, err := parseModulePath(root)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	path := configPath
	if path == "" {
		path = filepath.Join(root, configFileName)
	}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && configPath == "":
		// No config file; defaults apply.
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// DOCHOOKS_LOG_LEVEL -> log.level, DOCHOOKS_OUTPUT -> output
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.Replace(key, "_", ".", 1)
		if key == "exclude" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Module = module
	cfg.Root = root
	cfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Output == "" || filepath.Base(c.Output) != c.Output {
		return fmt.Errorf("output must be a file name, got %q", c.Output)
	}
	if !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
		return fmt.Errorf("output must be a non-test .go file, got %q", c.Output)
	}
	return c.Log.Validate()
}

// findModuleRoot walks up from dir to find the directory containing go.mod.
func findModuleRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("go.mod not found in any parent directory")
}

func parseModulePath(root string) (string, error) {
	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("open go.mod: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			return strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "module ")), `"`), nil
		}
	}
	return "", fmt.Errorf("module directive not found in go.mod")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
