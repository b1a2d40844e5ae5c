package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/animename/internal/logging"
	"github.com/Nomadcxx/animename/internal/paths"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ANIMENAME_SERVER_ADDR.
const EnvPrefix = "ANIMENAME"

type Config struct {
	Watch    WatchConfig    `mapstructure:"watch"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Parser   ParserConfig   `mapstructure:"parser"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// WatchConfig lists the download directories whose new files are parsed.
type WatchConfig struct {
	Dirs       []string `mapstructure:"dirs"`
	Extensions []string `mapstructure:"extensions"`
	Recursive  bool     `mapstructure:"recursive"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type ParserConfig struct {
	// Concurrency bounds batch parsing; zero means one worker per CPU.
	Concurrency int `mapstructure:"concurrency"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Logger converts the section into a logging.Config.
func (l LoggingConfig) Logger() logging.Config {
	return logging.Config{
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			Dirs:       []string{},
			Extensions: []string{".torrent", ".mkv", ".mp4", ".avi"},
			Recursive:  true,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8787",
			CORSOrigins: []string{"*"},
		},
		Parser: ParserConfig{
			Concurrency: 0,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults. ANIMENAME_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = GetDatabasePath()
	}
	return cfg, nil
}

// bindEnv registers the scalar keys so AutomaticEnv sees them during
// Unmarshal even when the file does not mention them.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"watch.recursive",
		"database.path",
		"server.addr",
		"parser.concurrency",
		"logging.level",
		"logging.file",
	} {
		_ = v.BindEnv(key)
	}
}

// Save writes the configuration to path, or the default location when path
// is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(c.ToTOML()), 0644)
}

func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# animename configuration
# Generated by: animename config init

# ============================================================================
# WATCH DIRECTORIES
# New torrents and video files in these directories are parsed and stored
# ============================================================================
[watch]
dirs = %s
extensions = %s
recursive = %v

# ============================================================================
# DATABASE
# ============================================================================
[database]
path = %q

# ============================================================================
# HTTP API (animename serve)
# ============================================================================
[server]
addr = %q
cors_origins = %s

# ============================================================================
# PARSER
# concurrency = 0 uses one worker per CPU
# ============================================================================
[parser]
concurrency = %d

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = %q
file = %q
max_size_mb = %d
max_backups = %d
max_age_days = %d
`,
		formatStringSlice(c.Watch.Dirs),
		formatStringSlice(c.Watch.Extensions),
		c.Watch.Recursive,
		c.Database.Path,
		c.Server.Addr,
		formatStringSlice(c.Server.CORSOrigins),
		c.Parser.Concurrency,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
		c.Logging.MaxAgeDays,
	)
}

func formatStringSlice(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// GetDatabasePath returns the default database path.
func GetDatabasePath() string {
	dbPath, err := paths.DatabasePath()
	if err != nil {
		return "./torrents.db"
	}
	return dbPath
}
