package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures configuration values for the calendar service.
type Config struct {
	HTTPPort     int           `yaml:"httpPort"`
	SQLiteDSN    string        `yaml:"sqliteDsn"`
	SlotMinutes  int           `yaml:"slotMinutes"`
	ViewCacheTTL time.Duration `yaml:"viewCacheTtl"`
}

// Load reads configuration from an optional YAML file named by
// CALENDAR_CONFIG and then applies environment variable overrides.
//
// The loader applies sensible defaults for optional fields while validating
// values and reporting localized error messages for bad entries.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:calendar.db?_pragma=foreign_keys(1)",
		SlotMinutes:  30,
		ViewCacheTTL: 30 * time.Second,
	}

	if path := strings.TrimSpace(os.Getenv("CALENDAR_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("Konfigurationsdatei konnte nicht gelesen werden: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("Konfigurationsdatei ist ungültig: %w", err)
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("CALENDAR_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "CALENDAR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("CALENDAR_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if slotValue := strings.TrimSpace(os.Getenv("CALENDAR_SLOT_MINUTES")); slotValue != "" {
		slot, err := strconv.Atoi(slotValue)
		if err != nil || slot <= 0 || slot > 24*60 {
			invalid = append(invalid, "CALENDAR_SLOT_MINUTES")
		} else {
			cfg.SlotMinutes = slot
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CALENDAR_VIEW_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CALENDAR_VIEW_CACHE_TTL")
		} else {
			cfg.ViewCacheTTL = ttl
		}
	}

	if cfg.SlotMinutes <= 0 || cfg.SlotMinutes > 24*60 {
		invalid = append(invalid, "slotMinutes")
	}
	if cfg.HTTPPort <= 0 {
		invalid = append(invalid, "httpPort")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("Ungültige Konfigurationswerte: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
