// Package config resolves settings from flags, environment, config files
// and a .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/arthur-debert/toran/chat"
	"github.com/arthur-debert/toran/formats"
	"github.com/arthur-debert/toran/inventory/storage"
)

const (
	// EnvPrefix prefixes every environment variable (TORAN_FILE, TORAN_LOG_LEVEL, ...)
	EnvPrefix = "TORAN"

	// ConfigEnv names a config file to use instead of the search paths
	ConfigEnv = "TORAN_CONFIG"

	// ConfigName is the base name of config files (toran.json, toran.yaml)
	ConfigName = "toran"
)

// Keys understood by Load
const (
	KeyFile      = "file"
	KeyBackend   = "backend"
	KeyFormat    = "format"
	KeyLogLevel  = "log-level"
	KeyVerbose   = "verbose"
	KeyChatDelay = "chat-delay"
)

// Config is the resolved application configuration
type Config struct {
	File      string
	Backend   storage.Backend
	Format    string
	LogLevel  string
	Verbose   bool
	ChatDelay time.Duration

	// Source is the config file that was read, if any
	Source string
}

// Options controls where New looks for configuration
type Options struct {
	// ConfigFile is an explicit config path (the --config flag); it wins over TORAN_CONFIG
	ConfigFile string

	// SearchPaths replaces the default config directories
	SearchPaths []string

	// EnvFiles lists dotenv files to load; missing files are ignored.
	// Defaults to ".env".
	EnvFiles []string
}

// New returns a viper instance with defaults, environment binding and the
// config file (if any) loaded
func New(opts Options) (*viper.Viper, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault(KeyFile, "")
	v.SetDefault(KeyBackend, string(storage.BackendJSON))
	v.SetDefault(KeyFormat, formats.Default)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyChatDelay, chat.DefaultDelay)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(ConfigEnv)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(ConfigName)
	paths := opts.SearchPaths
	if paths == nil {
		paths = []string{".", "$HOME/.toran"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load validates and resolves the settings held by v
func Load(v *viper.Viper) (Config, error) {
	backend, err := storage.ParseBackend(v.GetString(KeyBackend))
	if err != nil {
		return Config{}, err
	}

	format := strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat)))
	if _, err := formats.Get(format); err != nil {
		return Config{}, err
	}

	delay := v.GetDuration(KeyChatDelay)
	if delay < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %s", KeyChatDelay, delay)
	}

	file := v.GetString(KeyFile)
	if file == "" {
		file = DefaultDataFile(backend)
	}

	return Config{
		File:      file,
		Backend:   backend,
		Format:    format,
		LogLevel:  v.GetString(KeyLogLevel),
		Verbose:   v.GetBool(KeyVerbose),
		ChatDelay: delay,
		Source:    v.ConfigFileUsed(),
	}, nil
}

// DefaultDataFile returns the data file used when none is configured
func DefaultDataFile(backend storage.Backend) string {
	name := "inventory.json"
	if backend == storage.BackendSQLite {
		name = "inventory.db"
	}
	return filepath.Join(DataDir(), name)
}

// DataDir returns the XDG data directory for the application
func DataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, ConfigName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ConfigName)
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Application Support", ConfigName)
	}
	return filepath.Join(homeDir, ".local", "share", ConfigName)
}
