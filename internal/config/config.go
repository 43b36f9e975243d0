package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the config file is read from unless overridden.
const DefaultPath = "/etc/batterylog/config.toml"

const (
	minReportSleeps = 1
	maxReportSleeps = 100
)

// Pairing modes accepted in report.pairing.
const (
	PairingTimeline   = "timeline"
	PairingPositional = "positional"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Battery BatteryConfig `toml:"battery"`
	Report  ReportConfig  `toml:"report"`
}

type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

type BatteryConfig struct {
	SysfsRoot string `toml:"sysfs_root"`
	// Name selects a power_supply device; empty means the first BAT*.
	Name string `toml:"name"`
}

type ReportConfig struct {
	Sleeps  int    `toml:"sleeps"`
	Pairing string `toml:"pairing"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: "/var/lib/batterylog/batterylog.db",
		},
		Battery: BatteryConfig{
			SysfsRoot: "/sys",
		},
		Report: ReportConfig{
			Sleeps:  5,
			Pairing: PairingTimeline,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return NormalizeAndValidate(cfg)
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func NormalizeAndValidate(cfg *Config) (*Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	sanitized := *cfg

	var err error
	sanitized.Storage.DBPath, err = sanitizePath("storage.db_path", sanitized.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	sanitized.Battery.SysfsRoot, err = sanitizePath("battery.sysfs_root", sanitized.Battery.SysfsRoot)
	if err != nil {
		return nil, err
	}

	sanitized.Battery.Name = strings.TrimSpace(sanitized.Battery.Name)
	if strings.ContainsRune(sanitized.Battery.Name, filepath.Separator) {
		return nil, fmt.Errorf("battery.name must be a device name, got %q", cfg.Battery.Name)
	}

	if err := validateRange("report.sleeps", sanitized.Report.Sleeps, minReportSleeps, maxReportSleeps); err != nil {
		return nil, err
	}

	sanitized.Report.Pairing = strings.ToLower(strings.TrimSpace(sanitized.Report.Pairing))
	switch sanitized.Report.Pairing {
	case "":
		sanitized.Report.Pairing = PairingTimeline
	case PairingTimeline, PairingPositional:
	default:
		return nil, fmt.Errorf("report.pairing must be %q or %q, got %q", PairingTimeline, PairingPositional, cfg.Report.Pairing)
	}

	return &sanitized, nil
}

// Encode writes cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var data bytes.Buffer
	if err := toml.NewEncoder(&data).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config TOML: %w", err)
	}
	return data.Bytes(), nil
}

func Save(path string, cfg *Config) error {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return fmt.Errorf("config path must not be empty")
	}

	sanitized, err := NormalizeAndValidate(cfg)
	if err != nil {
		return err
	}

	data, err := Encode(sanitized)
	if err != nil {
		return err
	}

	dir := filepath.Dir(trimmedPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, trimmedPath); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	tmpPath = ""

	return nil
}

func sanitizePath(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s must not be empty", name)
	}
	cleaned := filepath.Clean(trimmed)
	if !filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%s must be an absolute path, got %q", name, value)
	}
	return cleaned, nil
}

func validateRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}

	return nil
}
