// Package config loads formbuilder-cli settings from defaults, an optional
// YAML file, FORMBUILDER_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by the config file, environment and flags.
const (
	KeyForm        = "form"
	KeyScript      = "script"
	KeySnapshot    = "snapshot"
	KeyLogLevel    = "log-level"
	KeyInteractive = "interactive"
	KeyUndoAll     = "undo-all"
)

// EnvPrefix prefixes every environment override, e.g. FORMBUILDER_LOG_LEVEL.
const EnvPrefix = "FORMBUILDER"

// Config holds the resolved CLI settings.
type Config struct {
	FormPath     string
	ScriptPath   string
	SnapshotPath string
	LogLevel     slog.Level
	Interactive  bool
	UndoAll      bool
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		FormPath: "form.yaml",
		LogLevel: slog.LevelWarn,
	}
}

// RegisterFlags adds the CLI flags to fs with the default values.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String(KeyForm, def.FormPath, "form definition (YAML)")
	fs.String(KeyScript, "", "edit script (YAML) replayed before review")
	fs.String(KeySnapshot, "", "write the form snapshot here on every change")
	fs.String(KeyLogLevel, def.LogLevel.String(), "log level: debug, info, warn, error")
	fs.Bool(KeyInteractive, false, "open the change-review drawer after replaying the script")
	fs.Bool(KeyUndoAll, false, "undo every recorded change before exiting")
}

// Load resolves the configuration. configFile may be empty; flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	def := Default()
	v := viper.New()
	v.SetDefault(KeyForm, def.FormPath)
	v.SetDefault(KeyLogLevel, def.LogLevel.String())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	cfg := Config{
		FormPath:     v.GetString(KeyForm),
		ScriptPath:   v.GetString(KeyScript),
		SnapshotPath: v.GetString(KeySnapshot),
		Interactive:  v.GetBool(KeyInteractive),
		UndoAll:      v.GetBool(KeyUndoAll),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}
	if strings.TrimSpace(cfg.FormPath) == "" {
		return Config{}, fmt.Errorf("config: %s is required", KeyForm)
	}
	if cfg.Interactive && cfg.UndoAll {
		return Config{}, fmt.Errorf("config: %s and %s are mutually exclusive", KeyInteractive, KeyUndoAll)
	}
	return cfg, nil
}
