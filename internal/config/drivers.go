package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ItsNotGoodName/x-stackwm/internal/core"
	"gopkg.in/yaml.v3"
)

// NewDriver picks the driver from the file extension, YAML by default.
func NewDriver(filePath string) Driver {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return NewJSON(filePath)
	default:
		return NewYAML(filePath)
	}
}

func NewYAML(filePath string) YAML {
	return YAML{
		filePath: filePath,
	}
}

type YAML struct {
	filePath string
}

// Exists implements Driver.
func (y YAML) Exists() (bool, error) {
	return core.FileExists(y.filePath)
}

func (y YAML) Path() string {
	return y.filePath
}

func (y YAML) Read() (Config, error) {
	file, err := os.Open(y.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (y YAML) Write(cfg Config) error {
	return writeAtomic(y.filePath, func(file *os.File) error {
		enc := yaml.NewEncoder(file)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	})
}

func NewJSON(filePath string) JSON {
	return JSON{
		filePath: filePath,
	}
}

type JSON struct {
	filePath string
}

// Exists implements Driver.
func (j JSON) Exists() (bool, error) {
	return core.FileExists(j.filePath)
}

func (j JSON) Path() string {
	return j.filePath
}

func (j JSON) Read() (Config, error) {
	file, err := os.Open(j.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (j JSON) Write(cfg Config) error {
	return writeAtomic(j.filePath, func(file *os.File) error {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	})
}

// writeAtomic writes to a temporary file and renames it over filePath.
func writeAtomic(filePath string, fn func(file *os.File) error) error {
	filePathTmp := filePath + ".tmp"
	file, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err := fn(file); err != nil {
		file.Close()
		os.Remove(filePathTmp)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(filePathTmp, filePath)
}

// Memory keeps the configuration in memory.
type Memory struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Exists() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg != nil, nil
}

func (m *Memory) Read() (Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg == nil {
		return DefaultConfig(), nil
	}
	return clone(*m.cfg), nil
}

func (m *Memory) Write(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg = clone(cfg)
	m.cfg = &cfg
	return nil
}

func clone(cfg Config) Config {
	cfg.Workspaces = append([]Workspace(nil), cfg.Workspaces...)
	cfg.Deny = append([]string(nil), cfg.Deny...)
	return cfg
}
