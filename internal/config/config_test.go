package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit", cfg: Config{APIBaseURL: " https://api.example.test/ ", Environment: EnvLocal}, want: "https://api.example.test"},
		{name: "local", cfg: Config{Environment: "Local"}, want: LocalBaseURL},
		{name: "production", cfg: Config{Environment: EnvProduction}, want: ProductionBaseURL},
		{name: "empty", cfg: Config{}, want: ProductionBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.BaseURL(); got != tt.want {
				t.Fatalf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeouts(t *testing.T) {
	cfg := Config{}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Fatalf("Timeout() = %v, want 30s", got)
	}
	if got := cfg.ExportTimeoutDuration(); got != 600*time.Second {
		t.Fatalf("ExportTimeoutDuration() = %v, want 600s", got)
	}

	cfg.TimeoutSeconds = 5
	if got := cfg.Timeout(); got != 5*time.Second {
		t.Fatalf("Timeout() = %v, want 5s", got)
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("JOBBOARD_ENV", "local")
	t.Setenv("JOBBOARD_PAGE_SIZE", "25")
	t.Setenv("JOBBOARD_TIMEOUT", "not-a-number")
	t.Setenv("JOBBOARD_INSECURE", "yes")

	cfg := DefaultConfig()
	if cfg.Environment != "local" {
		t.Fatalf("Environment = %q, want local", cfg.Environment)
	}
	if cfg.PageSize != 25 {
		t.Fatalf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Fatalf("TimeoutSeconds = %d, want fallback 30", cfg.TimeoutSeconds)
	}
	if !cfg.Insecure {
		t.Fatalf("Insecure = false, want true")
	}
	if cfg.TokenStore != TokenStoreFile {
		t.Fatalf("TokenStore = %q, want %q", cfg.TokenStore, TokenStoreFile)
	}
}

func TestLoadFileJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	data := `{
  // comments are allowed
  environment: "local",
  page_size: 20,
  token_store: "redis",
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path, Config{PageSize: 10, ExportDir: "."})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.BaseURL() != LocalBaseURL {
		t.Fatalf("BaseURL() = %q, want %q", cfg.BaseURL(), LocalBaseURL)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("PageSize = %d, want 20", cfg.PageSize)
	}
	if cfg.TokenStore != TokenStoreRedis {
		t.Fatalf("TokenStore = %q, want %q", cfg.TokenStore, TokenStoreRedis)
	}
	if cfg.ExportDir != "." {
		t.Fatalf("ExportDir = %q, want default kept", cfg.ExportDir)
	}
}

func TestLoadFileMissing(t *testing.T) {
	want := Config{PageSize: 10}
	got, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"), want)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got != want {
		t.Fatalf("LoadFile() = %+v, want %+v", got, want)
	}
}

func TestInitWritesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	t.Setenv("JOBBOARD_CONFIG_DIR", dir)

	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if len(created) != 1 || created[0] != filepath.Join(dir, ConfigFileName) {
		t.Fatalf("Init() created = %v", created)
	}

	created, err = Init()
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("second Init() created = %v, want none", created)
	}

	sessionPath, err := SessionPath()
	if err != nil {
		t.Fatalf("SessionPath() error = %v", err)
	}
	if sessionPath != filepath.Join(dir, SessionFileName) {
		t.Fatalf("SessionPath() = %q", sessionPath)
	}
}
