package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// DefaultBaseURL is where the query backend listens unless configured
// otherwise.
const DefaultBaseURL = "http://localhost:5000/api"

// FileLoader loads YAML configuration from ~/.dbpilot/config.yaml
// (overridable via DBPILOT_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return hydrateDefaults(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("DBPILOT_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".dbpilot", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		API: domain.APISettings{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Storage: domain.StorageSettings{
			Backend: "file",
			Dir:     filepath.Join(userHomeDir(), ".dbpilot", "state"),
		},
		Connection: domain.ConnectionSettings{
			Handshake:        "simulated",
			HandshakeDelayMS: 1000,
		},
		Preferences: domain.Preferences{
			HistoryLimit: 50,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if custom := os.Getenv("DBPILOT_API_URL"); custom != "" {
		cfg.API.BaseURL = custom
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = filepath.Join(userHomeDir(), ".dbpilot", "state")
	}
	if cfg.Connection.Handshake == "" {
		cfg.Connection.Handshake = "simulated"
	}
	if cfg.Connection.HandshakeDelayMS == 0 {
		cfg.Connection.HandshakeDelayMS = 1000
	}
	if cfg.Preferences.HistoryLimit == 0 {
		cfg.Preferences.HistoryLimit = 50
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
