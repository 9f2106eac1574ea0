package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"envstore/internal/dotenv"
)

const (
	defaultConfigName = "envstore"
	envPrefix         = "ENVSTORE"
)

type Config struct {
	// MaxEntries caps store growth; 0 means unlimited.
	MaxEntries int

	// LoadLogPath enables the NDJSON event log when set.
	LoadLogPath string

	LogLevel slog.Level

	Dotenv dotenv.Config
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"initial-capacity":  "store.initial_capacity",
	"max-entries":       "store.max_entries",
	"max-line-length":   "parse.max_line_length",
	"keep-unterminated": "parse.keep_unterminated",
	"ndjson":            "telemetry.load_ndjson_path",
	"log-level":         "log.level",
}

// RegisterFlags adds the flags that Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file path (default: ./envstore.yaml or ./config/envstore.yaml)")
	fs.Int("initial-capacity", dotenv.DefaultInitialCapacity, "initial store capacity")
	fs.Int("max-entries", 0, "maximum number of stored entries (0 = unlimited)")
	fs.Int("max-line-length", dotenv.DefaultMaxLineLength, "maximum line length in bytes")
	fs.Bool("keep-unterminated", false, "keep an unterminated ${ and the text after it")
	fs.String("ndjson", "", "write load events as NDJSON to this path")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
}

// Load reads config from file, ENVSTORE_* variables and fs, in increasing
// priority. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.initial_capacity", dotenv.DefaultInitialCapacity)
	v.SetDefault("store.max_entries", 0)
	v.SetDefault("parse.max_line_length", dotenv.DefaultMaxLineLength)
	v.SetDefault("parse.keep_unterminated", false)
	v.SetDefault("telemetry.load_ndjson_path", "")
	v.SetDefault("log.level", "info")

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}
	explicit := configFile(fs)
	if explicit != "" {
		v.SetConfigFile(explicit)
	}

	// Config file is optional unless one was named explicitly.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		MaxEntries:  v.GetInt("store.max_entries"),
		LoadLogPath: strings.TrimSpace(v.GetString("telemetry.load_ndjson_path")),
		Dotenv: dotenv.Config{
			InitialCapacity:  v.GetInt("store.initial_capacity"),
			MaxLineLength:    v.GetInt("parse.max_line_length"),
			KeepUnterminated: v.GetBool("parse.keep_unterminated"),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v.GetString("log.level")))); err != nil {
		return Config{}, fmt.Errorf("invalid log.level %q: %w", v.GetString("log.level"), err)
	}
	if cfg.Dotenv.InitialCapacity < 0 {
		return Config{}, fmt.Errorf("invalid store.initial_capacity %d", cfg.Dotenv.InitialCapacity)
	}
	if cfg.MaxEntries < 0 {
		return Config{}, fmt.Errorf("invalid store.max_entries %d", cfg.MaxEntries)
	}
	if cfg.Dotenv.MaxLineLength <= 0 {
		return Config{}, fmt.Errorf("invalid parse.max_line_length %d", cfg.Dotenv.MaxLineLength)
	}

	if cfg.LoadLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LoadLogPath), 0o755); err != nil {
			return Config{}, fmt.Errorf("create telemetry dir: %w", err)
		}
	}
	return cfg, nil
}

func configFile(fs *pflag.FlagSet) string {
	if fs == nil {
		return ""
	}
	if f := fs.Lookup("config"); f != nil {
		return strings.TrimSpace(f.Value.String())
	}
	return ""
}
