// Package appconfig holds the deployment-level configuration for
// running the control core against a real LCD and settings file — as
// opposed to internal/config.LcdConfig, which is the rider-adjustable
// settings mirrored from the LCD itself. Grounded on the sagostin
// dashboard's YAML config loader, adapted to this core's collaborators.
package appconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level deployment configuration.
type Config struct {
	LCD      LCDConfig      `yaml:"lcd"`
	Settings SettingsConfig `yaml:"settings"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Strategy StrategyConfig `yaml:"strategy"`
	Logging  LoggingConfig  `yaml:"logging"`

	path string
}

// LCDConfig describes the serial link to the handlebar LCD.
type LCDConfig struct {
	Type     string `yaml:"type"` // "serial" or "simulated"
	PortPath string `yaml:"port_path"`
	BaudRate int    `yaml:"baud_rate"`
}

// SettingsConfig describes where the persisted LcdConfig settings file lives.
type SettingsConfig struct {
	Path string `yaml:"path"`
}

// MonitorConfig configures the optional bench telemetry websocket server.
type MonitorConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// StrategyConfig holds a strategy name read from the config file, which
// the CLI's "dump-config" command prints. It is not derived from the
// build and does not select anything: the actual selection happens at
// compile time via build tags (internal/control's select_*.go files).
type StrategyConfig struct {
	Name string `yaml:"name"`
}

// LoggingConfig configures the application's slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns a Config with sensible defaults for running against
// the bench simulator.
func Default() *Config {
	return &Config{
		LCD: LCDConfig{
			Type:     "simulated",
			PortPath: "/dev/ttyLCD",
			BaudRate: 9600,
		},
		Settings: SettingsConfig{
			Path: "settings.ebcfg",
		},
		Monitor: MonitorConfig{
			Enabled:    false,
			ListenAddr: "127.0.0.1:8642",
		},
		Strategy: StrategyConfig{
			Name: "throttle_pas",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path as YAML, falling back to Default() if the file does
// not exist or fails to parse, then applies EBIKE_*-prefixed
// environment variable overrides.
func Load(path string) *Config {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Info("no config file found, using defaults", "path", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("failed to parse config, using defaults", "path", path, "error", err)
		cfg = Default()
		cfg.path = path
	} else {
		slog.Info("config loaded", "path", path)
	}

	loadEnvFile(filepath.Join(filepath.Dir(path), ".env"))
	cfg.applyEnvOverrides()
	return cfg
}

// loadEnvFile reads a simple KEY=VALUE .env file and sets process
// environment variables, without overriding ones already set.
func loadEnvFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

// applyEnvOverrides reads EBIKE_LCD_PORT, EBIKE_LCD_BAUD,
// EBIKE_SETTINGS_PATH, EBIKE_MONITOR_ADDR, and EBIKE_LOG_LEVEL.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EBIKE_LCD_PORT"); v != "" {
		c.LCD.PortPath = v
	}
	if v := os.Getenv("EBIKE_LCD_BAUD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LCD.BaudRate = n
		}
	}
	if v := os.Getenv("EBIKE_SETTINGS_PATH"); v != "" {
		c.Settings.Path = v
	}
	if v := os.Getenv("EBIKE_MONITOR_ADDR"); v != "" {
		c.Monitor.ListenAddr = v
		c.Monitor.Enabled = true
	}
	if v := os.Getenv("EBIKE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Save writes the config back to its loaded path as YAML.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("appconfig: no path set, load via Load() first")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	return nil
}
