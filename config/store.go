package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/paths"
)

// ErrConfigDirUnresolvable is returned when the platform cannot supply a
// config directory. Loading falls back to in-memory defaults; only saves fail.
var ErrConfigDirUnresolvable = errors.New("could not determine config directory")

// Store reads and writes config.json. Path resolution happens once at
// construction so a save always lands where a subsequent load will look.
type Store struct {
	filePath string // empty when the config directory could not be resolved
}

// NewStore creates a store at the platform config path.
func NewStore() *Store {
	path, err := paths.ConfigFilePath()
	if err != nil {
		logger.WithComponent("config").Warn("could not determine config directory, using defaults", "error", err)
		return &Store{}
	}
	return &Store{filePath: path}
}

// NewStoreAt creates a store backed by an explicit file path (for testing).
func NewStoreAt(path string) *Store {
	return &Store{filePath: path}
}

// Path returns the config file path, or ErrConfigDirUnresolvable when the
// platform could not supply one.
func (s *Store) Path() (string, error) {
	if s.filePath == "" {
		return "", ErrConfigDirUnresolvable
	}
	return s.filePath, nil
}

// Load reads the config from disk. A missing file is created with defaults;
// an unreadable or corrupt file falls back to defaults WITHOUT touching the
// file, so a hand-edit gone wrong stays recoverable. Never fails: the shell
// must start even when the disk doesn't cooperate.
func (s *Store) Load() Config {
	log := logger.WithComponent("config")

	if s.filePath == "" {
		log.Warn("no config directory, using in-memory defaults")
		return Default()
	}

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		// First run: create the default config file
		if saveErr := s.Save(Default()); saveErr != nil {
			log.Error("failed to create default config", "error", saveErr)
		} else {
			log.Info("created default config", "path", s.filePath)
		}
		return Default()
	}
	if err != nil {
		log.Error("failed to read config, using defaults", "path", s.filePath, "error", err)
		return Default()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Leave the corrupt file in place for manual recovery
		log.Error("failed to parse config, using defaults", "path", s.filePath, "error", err)
		return Default()
	}

	log.Info("loaded config", "path", s.filePath)
	return cfg.sanitize()
}

// Save writes the config to disk with stable human-readable formatting.
// The write is atomic: the document is staged to a temp file in the config
// directory and renamed over config.json, so readers never observe a
// half-written file.
func (s *Store) Save(cfg Config) error {
	if s.filePath == "" {
		return ErrConfigDirUnresolvable
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
