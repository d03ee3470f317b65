package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Strowy/ProceduralGame/internal/dungeon"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procgen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.World.Seed != 1128 {
		t.Errorf("Seed = %d, want 1128", cfg.World.Seed)
	}
	if cfg.Dungeon.Params() != dungeon.DefaultParams() {
		t.Errorf("Dungeon.Params() = %+v, want %+v", cfg.Dungeon.Params(), dungeon.DefaultParams())
	}
	if cfg.Terrain.Properties() != terrain.DefaultProperties() {
		t.Errorf("Terrain.Properties() = %+v, want %+v", cfg.Terrain.Properties(), terrain.DefaultProperties())
	}
	if strategy, err := cfg.Dungeon.StrategyValue(); err != nil || strategy != dungeon.HallRoom {
		t.Errorf("StrategyValue() = %v, %v; want hall_room", strategy, err)
	}
	if cfg.Dungeon.Floors != 3 {
		t.Errorf("Floors = %d, want 3", cfg.Dungeon.Floors)
	}
	if len(cfg.Preview.AllowedOrigins) != 0 {
		t.Errorf("expected empty AllowedOrigins (same-origin), got %v", cfg.Preview.AllowedOrigins)
	}
	if cfg.Preview.MaxMessageSize != 4096 {
		t.Errorf("MaxMessageSize = %d, want 4096", cfg.Preview.MaxMessageSize)
	}
	if cfg.Preview.MaxConnectionsPerIP != 3 || cfg.Preview.MaxConnections != 100 {
		t.Errorf("connection limits = %d/%d, want 3/100", cfg.Preview.MaxConnectionsPerIP, cfg.Preview.MaxConnections)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig does not validate: %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.World.Seed != 1128 || cfg.Dungeon.Width != 64 {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := writeConfig(t, `world:
  seed: 42
dungeon:
  strategy: tick_budget
  complexity: 30
terrain:
  corner_rise: 4
logging:
  level: DEBUG
database:
  sqlite_path: /tmp/worlds/cleared.db
  postgres:
    conn_max_lifetime: 90s
preview:
  address: 127.0.0.1:9000
  allowed_origins:
    - https://maps.example.com
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.World.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.World.Seed)
	}
	if strategy, _ := cfg.Dungeon.StrategyValue(); strategy != dungeon.TickBudget {
		t.Errorf("strategy = %v, want tick_budget", strategy)
	}
	if cfg.Dungeon.Complexity != 30 {
		t.Errorf("Complexity = %d, want 30", cfg.Dungeon.Complexity)
	}
	if cfg.Dungeon.Width != 64 || cfg.Dungeon.MaxTunnel != 6 {
		t.Errorf("unset dungeon keys lost their defaults: %+v", cfg.Dungeon)
	}
	if cfg.Terrain.CornerRise != 4 || cfg.Terrain.BiomeSize != 32 {
		t.Errorf("terrain = %+v, want corner_rise 4 and default biome size", cfg.Terrain)
	}
	if cfg.Logging.Level != "DEBUG" || !cfg.Logging.ConsoleEnabled {
		t.Errorf("logging = %+v, want DEBUG with console kept on", cfg.Logging)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/worlds/cleared.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Database.Postgres.ConnMaxLifetime != 90*time.Second {
		t.Errorf("ConnMaxLifetime = %v, want 90s", cfg.Database.Postgres.ConnMaxLifetime)
	}
	if cfg.Database.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want default 5432", cfg.Database.Postgres.Port)
	}
	if cfg.Preview.Address != "127.0.0.1:9000" {
		t.Errorf("Address = %q", cfg.Preview.Address)
	}
	if len(cfg.Preview.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.Preview.AllowedOrigins)
	}
	if cfg.Preview.MaxMessageSize != 4096 {
		t.Errorf("MaxMessageSize = %d, want default 4096", cfg.Preview.MaxMessageSize)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "world: [not a map")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"small map", "dungeon:\n  width: 8\n", dungeon.ErrInvalidParams},
		{"no floors", "dungeon:\n  floors: 0\n", dungeon.ErrInvalidParams},
		{"huge rooms", "dungeon:\n  room_size: 20\n", dungeon.ErrInvalidParams},
		{"bad persistence", "terrain:\n  persistence: 1.5\n", terrain.ErrInvalidProperties},
		{"tiny biome", "terrain:\n  biome_size: 4\n", terrain.ErrInvalidProperties},
		{"unknown strategy", "dungeon:\n  strategy: maze\n", nil},
		{"unknown db driver", "database:\n  driver: mysql\n", nil},
		{"bad log format", "logging:\n  console_format: xml\n", nil},
		{"zero message size", "preview:\n  max_message_size: 0\n", nil},
		{"negative conn limit", "preview:\n  max_connections_per_ip: -1\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig accepted an invalid config")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PROCGEN_SEED", "-77")
	t.Setenv("PROCGEN_DUNGEON_STRATEGY", "tick-budget")
	t.Setenv("PROCGEN_DB_DRIVER", "SQLITE")
	t.Setenv("PROCGEN_PREVIEW_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "ERROR")

	cfg, err := LoadConfig(writeConfig(t, "world:\n  seed: 5\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.World.Seed != -77 {
		t.Errorf("Seed = %d, want -77 (from env var)", cfg.World.Seed)
	}
	if strategy, _ := cfg.Dungeon.StrategyValue(); strategy != dungeon.TickBudget {
		t.Errorf("strategy = %v, want tick_budget (from env var)", strategy)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Preview.Address != ":9999" {
		t.Errorf("Address = %q, want :9999 (from env var)", cfg.Preview.Address)
	}
	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Logging.Level = %q, want ERROR (from env var)", cfg.Logging.Level)
	}
}

func TestLoadConfig_BadSeedEnv(t *testing.T) {
	t.Setenv("PROCGEN_SEED", "twelve")
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected error for non-numeric PROCGEN_SEED")
	}
}

func TestNewCarver(t *testing.T) {
	cfg := DefaultConfig()
	carver, err := cfg.Dungeon.NewCarver()
	if err != nil {
		t.Fatalf("NewCarver: %v", err)
	}
	if carver.Strategy() != dungeon.HallRoom {
		t.Errorf("Strategy() = %v, want hall_room", carver.Strategy())
	}
	if carver.Params() != cfg.Dungeon.Params() {
		t.Errorf("Params() = %+v, want %+v", carver.Params(), cfg.Dungeon.Params())
	}

	cfg.Dungeon.Strategy = "spiral"
	if _, err := cfg.Dungeon.NewCarver(); err == nil {
		t.Error("NewCarver accepted an unknown strategy")
	}
}

func TestIsOriginAllowed_SameOrigin(t *testing.T) {
	cfg := PreviewConfig{AllowedOrigins: []string{}}

	if !cfg.IsOriginAllowed("", "localhost:8080") {
		t.Error("expected empty origin to be allowed (same-origin)")
	}
	if !cfg.IsOriginAllowed("http://localhost:8080", "localhost:8080") {
		t.Error("expected matching origin to be allowed (same-origin)")
	}
	if cfg.IsOriginAllowed("http://evil.com", "localhost:8080") {
		t.Error("expected different origin to be rejected (same-origin policy)")
	}
}

func TestIsOriginAllowed_List(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "http://anything.com", true},
		{"wildcard empty origin", []string{"*"}, "", true},
		{"exact", []string{"https://example.com", "http://localhost:3000"}, "http://localhost:3000", true},
		{"no match", []string{"https://example.com"}, "http://evil.com", false},
		{"partial", []string{"https://example.com"}, "https://example.com:8080", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := PreviewConfig{AllowedOrigins: tt.allowed}
			if got := cfg.IsOriginAllowed(tt.origin, "localhost:8080"); got != tt.want {
				t.Errorf("IsOriginAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		origin      string
		requestHost string
		expected    bool
	}{
		{"", "localhost:8080", true},
		{"http://localhost:8080", "localhost:8080", true},
		{"https://localhost:8080", "localhost:8080", true},
		{"http://localhost:8080/", "localhost:8080", true},
		{"http://example.com", "localhost:8080", false},
		{"http://localhost:3000", "localhost:8080", false},
		{"ws://localhost:8080", "localhost:8080", true},
	}

	for _, tt := range tests {
		if got := isSameOrigin(tt.origin, tt.requestHost); got != tt.expected {
			t.Errorf("isSameOrigin(%q, %q) = %v, want %v", tt.origin, tt.requestHost, got, tt.expected)
		}
	}
}
