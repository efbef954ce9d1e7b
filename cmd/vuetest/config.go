package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	vuetest "github.com/Pr0ny/vue-template-tester"
	"github.com/Pr0ny/vue-template-tester/internal/settings"
	"github.com/Pr0ny/vue-template-tester/internal/testgen"
)

const (
	defaultConfigFile = ".vuetest.yaml"
	defaultIgnoreFile = ".gitignore"
	envPrefix         = "VUETEST_"
)

var defaultPaths = []string{"src/**/*.vue"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(changedFlags(cmd.Flags()), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// changedFlags provides only the flags the user set, so flag defaults never mask file or env values
func changedFlags(flags *pflag.FlagSet) *posflag.Posflag {
	return posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
}

// loadConfigFromPath loads configuration from a file and environment variables.
// A config file that cannot be parsed is logged and skipped.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			slog.Warn("Ignoring unreadable config file", "path", configPath, "error", err)
		}
	}

	// 2. Environment variables (VUETEST_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// configSections are the nested blocks of .vuetest.yaml
var configSections = []string{"generate", "scan", "log"}

// envKey maps environment variables to config keys:
// VUETEST_GENERATE_LOCAL_PATH -> generate.local-path, VUETEST_IGNORE_FILE -> ignore-file
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, rest, found := strings.Cut(key, "_")
	if found && slices.Contains(configSections, section) {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// settingsStore opens the settings record named by --settings or the config file
func settingsStore() *settings.Store {
	return settings.NewStore(getStringWithFallback("settings", "settings", settings.DefaultPath))
}

// buildGenerationConfig layers flags, env and the config file over the persisted settings record.
func buildGenerationConfig(record settings.Settings) (testgen.Config, error) {
	base := record.Config()

	cfg := testgen.Config{
		ExtraImports:     getStringWithFallback("imports", "generate.imports", base.ExtraImports),
		SelectorTemplate: getStringWithFallback("selector", "generate.selector", base.SelectorTemplate),
		LocalPath:        getBoolWithFallback("local-path", "generate.local-path", base.LocalPath),
		DataTest:         base.DataTest,
		RootMarker:       getStringWithFallback("root-marker", "generate.root-marker", base.RootMarker),
		AliasPrefix:      getStringWithFallback("alias-prefix", "generate.alias-prefix", base.AliasPrefix),
		Quote:            testgen.Quote(getStringWithFallback("quote", "generate.quote", string(base.Quote))),
		Scaffold:         testgen.Scaffold(getStringWithFallback("scaffold", "generate.scaffold", string(base.Scaffold))),
		Extension:        getStringWithFallback("ext", "generate.ext", base.Extension),
		Distinct:         getBoolWithFallback("distinct", "generate.distinct", base.Distinct),
	}

	// --imports-file replaces the extra imports text
	if path := getStringWithFallback("imports-file", "generate.imports-file", ""); path != "" {
		// #nosec G304 - path is chosen by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading imports file: %w", err)
		}
		cfg.ExtraImports = string(data)
	}

	switch cfg.Quote {
	case "", testgen.QuoteSingle, testgen.QuoteDouble:
	default:
		return cfg, fmt.Errorf("invalid quote style %q (want single or double)", cfg.Quote)
	}

	switch cfg.Scaffold {
	case "", testgen.ScaffoldFull, testgen.ScaffoldMinimal:
	default:
		return cfg, fmt.Errorf("invalid scaffold %q (want full or minimal)", cfg.Scaffold)
	}

	return cfg, nil
}

// buildBatchConfig constructs the library's Config struct from koanf state.
func buildBatchConfig(args []string, record settings.Settings) (vuetest.Config, error) {
	generation, err := buildGenerationConfig(record)
	if err != nil {
		return vuetest.Config{}, err
	}

	return vuetest.Config{
		Paths:       resolvePaths(args, "generate.paths"),
		Generation:  generation,
		SnippetDir:  getStringWithFallback("snippets", "generate.snippets", ""),
		IgnoreFile:  getStringWithFallback("ignore-file", "ignore-file", defaultIgnoreFile),
		DryRun:      getBoolWithFallback("dry-run", "generate.dry-run", false),
		NoClobber:   getBoolWithFallback("no-clobber", "generate.no-clobber", false),
		Concurrency: getIntWithFallback("concurrency", "generate.concurrency", 0),
	}, nil
}

// resolvePaths prefers positional args, then the config key, then the default glob
func resolvePaths(args []string, configKey string) []string {
	if len(args) > 0 {
		return args
	}
	if paths := k.Strings(configKey); len(paths) > 0 {
		return paths
	}
	return defaultPaths
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
// A key that is set to "" still wins, so an empty flag can clear a lower layer.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if k.Exists(flagKey) {
		return k.String(flagKey)
	}
	if k.Exists(configKey) {
		return k.String(configKey)
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
