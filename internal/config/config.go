package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobboard"
	ConfigFileName  = "config.json"
	SessionFileName = "session.json"
	SeenFileName    = "seen.json"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"

	LocalBaseURL      = "https://localhost:7017"
	ProductionBaseURL = "https://peria-pulse-be-dev-audxeahdbuhqbjah.westeurope-01.azurewebsites.net"
)

const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

// Config contains client defaults. Zero values fall back to built-in defaults.
type Config struct {
	Environment      string `json:"environment"`
	APIBaseURL       string `json:"api_base_url"`
	DefaultCountry   string `json:"default_country"`
	DefaultTimeframe int    `json:"default_timeframe_weeks"`
	PageSize         int    `json:"page_size"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	ExportTimeout    int    `json:"export_timeout_seconds"`
	ExportDir        string `json:"export_dir"`
	Proxy            string `json:"proxy"`
	Insecure         bool   `json:"insecure"`
	TokenStore       string `json:"token_store"`
	RedisAddr        string `json:"redis_addr"`
	RedisPassword    string `json:"redis_password,omitempty"`
	RedisDB          int    `json:"redis_db"`
	RedisKey         string `json:"redis_key"`
}

func DefaultConfig() Config {
	return Config{
		Environment:      envString("JOBBOARD_ENV", EnvProduction),
		APIBaseURL:       envString("JOBBOARD_API_BASE_URL", ""),
		DefaultCountry:   envString("JOBBOARD_DEFAULT_COUNTRY", ""),
		DefaultTimeframe: envInt("JOBBOARD_DEFAULT_TIMEFRAME", 1),
		PageSize:         envInt("JOBBOARD_PAGE_SIZE", 10),
		TimeoutSeconds:   envInt("JOBBOARD_TIMEOUT", 30),
		ExportTimeout:    envInt("JOBBOARD_EXPORT_TIMEOUT", 600),
		ExportDir:        envString("JOBBOARD_EXPORT_DIR", "."),
		Proxy:            envString("JOBBOARD_PROXY", ""),
		Insecure:         envBool("JOBBOARD_INSECURE"),
		TokenStore:       envString("JOBBOARD_TOKEN_STORE", TokenStoreFile),
		RedisAddr:        envString("JOBBOARD_REDIS_ADDR", "localhost:6379"),
		RedisPassword:    envString("JOBBOARD_REDIS_PASSWORD", ""),
		RedisDB:          envInt("JOBBOARD_REDIS_DB", 0),
		RedisKey:         envString("JOBBOARD_REDIS_KEY", "jobboard:session"),
	}
}

// BaseURL resolves the backend origin: explicit api_base_url first, then the
// environment name.
func (c Config) BaseURL() string {
	if base := strings.TrimSpace(c.APIBaseURL); base != "" {
		return strings.TrimRight(base, "/")
	}
	if strings.EqualFold(strings.TrimSpace(c.Environment), EnvLocal) {
		return LocalBaseURL
	}
	return ProductionBaseURL
}

func (c Config) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds, 30)
}

func (c Config) ExportTimeoutDuration() time.Duration {
	return seconds(c.ExportTimeout, 600)
}

func seconds(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("JOBBOARD_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	return inConfigDir(ConfigFileName)
}

func SessionPath() (string, error) {
	return inConfigDir(SessionFileName)
}

func SeenPath() (string, error) {
	return inConfigDir(SeenFileName)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Load reads .env (if present) and then config.json on top of the defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	return LoadFile(path, cfg)
}

// LoadFile overlays the JSON5 file at path onto cfg. A missing or blank file
// leaves cfg unchanged.
func LoadFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Init writes a default config.json if it doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
