package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultDebounceMS is the quiet period before a document write.
const DefaultDebounceMS = 400

// Config represents the application configuration.
type Config struct {
	Storage  StorageConfig `json:"storage"`
	Locale   LocaleConfig  `json:"locale"`
	Logging  LoggingConfig `json:"logging"`
	Defaults DefaultConfig `json:"defaults"`
}

// StorageConfig selects where editor state is kept.
type StorageConfig struct {
	Backend    string `json:"backend" validate:"oneof=file memory redis"`
	Path       string `json:"path,omitempty" validate:"required_if=Backend file"`
	RedisURL   string `json:"redis_url,omitempty" validate:"required_if=Backend redis"`
	KeyPrefix  string `json:"key_prefix,omitempty"`
	DebounceMS int    `json:"debounce_ms,omitempty" validate:"gte=0,lte=60000"`
}

// LocaleConfig holds the export language.
type LocaleConfig struct {
	Language    string `json:"language,omitempty"`
	CatalogPath string `json:"catalog_path,omitempty"`
}

// LoggingConfig holds log destinations.
type LoggingConfig struct {
	File  string `json:"file,omitempty"`
	Level string `json:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=json md yaml"`
}

// Debounce returns the document write debounce window.
func (c *Config) Debounce() (d time.Duration) {
	d = time.Duration(c.Storage.DebounceMS) * time.Millisecond
	return d
}

// Dir returns the directory holding the config file and local state.
func Dir() (dir string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return dir, err
	}
	dir = filepath.Join(homeDir, ".resume-builder")
	return dir, err
}

// Default returns the configuration used when no config file exists.
func Default() (cfg Config, err error) {
	var dir string
	dir, err = Dir()
	if err != nil {
		return cfg, err
	}

	cfg = Config{
		Storage: StorageConfig{
			Backend:    BackendFile,
			Path:       filepath.Join(dir, "state.json"),
			DebounceMS: DefaultDebounceMS,
		},
		Locale: LocaleConfig{
			Language: "en",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Defaults: DefaultConfig{
			OutputDir: ".",
			Format:    "md",
		},
	}
	return cfg, err
}

// Load reads configuration from file with environment variable overrides. A
// missing file at the default location yields the defaults; a missing file that
// was asked for explicitly is an error. A .env file in the working directory is
// loaded first.
func Load(configPath string) (cfg Config, err error) {
	_ = godotenv.Load()

	cfg, err = Default()
	if err != nil {
		return cfg, err
	}

	// Determine config file location
	path := configPath
	if path == "" {
		var dir string
		dir, err = Dir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-builder init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() (err error) {
	if backend := os.Getenv("RESUME_BUILDER_STORAGE"); backend != "" {
		c.Storage.Backend = backend
	}
	if redisURL := os.Getenv("RESUME_BUILDER_REDIS_URL"); redisURL != "" {
		c.Storage.RedisURL = redisURL
	}
	if dataDir := os.Getenv("RESUME_BUILDER_DATA_DIR"); dataDir != "" {
		c.Storage.Path = filepath.Join(dataDir, "state.json")
	}
	if debounce := os.Getenv("RESUME_BUILDER_DEBOUNCE_MS"); debounce != "" {
		c.Storage.DebounceMS, err = strconv.Atoi(debounce)
		if err != nil {
			err = errors.Wrapf(err, "invalid RESUME_BUILDER_DEBOUNCE_MS %q", debounce)
			return err
		}
	}
	if locale := os.Getenv("RESUME_BUILDER_LOCALE"); locale != "" {
		c.Locale.Language = locale
	}
	if logFile := os.Getenv("RESUME_BUILDER_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}
	if logLevel := os.Getenv("RESUME_BUILDER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return err
}

// Validate checks the configuration and fills in defaults for optional fields.
func (c *Config) Validate() (err error) {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.DebounceMS == 0 {
		c.Storage.DebounceMS = DefaultDebounceMS
	}

	err = validator.New().Struct(c)
	if err != nil {
		err = errors.Wrap(err, "invalid configuration")
		return err
	}

	if c.Locale.Language != "" {
		_, err = language.Parse(c.Locale.Language)
		if err != nil {
			err = errors.Wrapf(err, "invalid locale.language %q", c.Locale.Language)
			return err
		}
	}

	if c.Locale.CatalogPath != "" {
		_, err = os.Stat(c.Locale.CatalogPath)
		if os.IsNotExist(err) {
			err = errors.Errorf("locale catalog not found: %s", c.Locale.CatalogPath)
			return err
		}
		err = nil
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "."
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var dir string
		dir, err = Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var defaultConfig Config
	defaultConfig, err = Default()
	if err != nil {
		return err
	}
	defaultConfig.Storage.Path = filepath.Join(dir, "state.json")

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
