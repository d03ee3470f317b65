// Package config loads the generator configuration: world seed, dungeon and
// terrain construction parameters, logging, the cleared-dungeon store and the
// preview service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Strowy/ProceduralGame/internal/database"
	"github.com/Strowy/ProceduralGame/internal/dungeon"
	"github.com/Strowy/ProceduralGame/internal/logger"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

// Config holds every section of the configuration file.
type Config struct {
	World    WorldConfig     `yaml:"world"`
	Dungeon  DungeonConfig   `yaml:"dungeon"`
	Terrain  TerrainConfig   `yaml:"terrain"`
	Logging  logger.Config   `yaml:"logging"`
	Database database.Config `yaml:"database"`
	Preview  PreviewConfig   `yaml:"preview"`
}

// WorldConfig holds settings shared by every generator.
type WorldConfig struct {
	// Seed drives the terrain noise. Dungeon floors are seeded by their
	// entrance position instead.
	Seed int `yaml:"seed"`
}

// DungeonConfig holds dungeon carver settings.
type DungeonConfig struct {
	// Strategy is "hall_room" or "tick_budget".
	Strategy   string `yaml:"strategy"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Complexity int    `yaml:"complexity"`
	RoomSize   int    `yaml:"room_size"`
	MinTunnel  int    `yaml:"min_tunnel"`
	MaxTunnel  int    `yaml:"max_tunnel"`

	// Floors is the number of floors below each entrance.
	Floors int `yaml:"floors"`
}

// TerrainConfig holds terrain field settings.
type TerrainConfig struct {
	ChunkSize   int     `yaml:"chunk_size"`
	BiomeSize   int     `yaml:"biome_size"`
	MaxHeight   int     `yaml:"max_height"`
	CellSize    float64 `yaml:"cell_size"`
	GridSize    int     `yaml:"grid_size"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	CornerRise  int     `yaml:"corner_rise"`
}

// PreviewConfig holds preview service settings.
type PreviewConfig struct {
	// Address is the listen address, e.g. ":8080".
	Address string `yaml:"address"`

	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum inbound WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`

	// MaxConnectionsPerIP caps concurrent sockets from one client IP.
	// MaxConnections caps the total. Zero disables either cap.
	MaxConnectionsPerIP int `yaml:"max_connections_per_ip"`
	MaxConnections      int `yaml:"max_connections"`
}

// DefaultConfig returns the values the game ships with.
func DefaultConfig() *Config {
	params := dungeon.DefaultParams()
	props := terrain.DefaultProperties()
	return &Config{
		World: WorldConfig{Seed: 1128},
		Dungeon: DungeonConfig{
			Strategy:   dungeon.HallRoom.String(),
			Width:      params.Width,
			Height:     params.Height,
			Complexity: params.Complexity,
			RoomSize:   params.RoomSize,
			MinTunnel:  params.MinTunnel,
			MaxTunnel:  params.MaxTunnel,
			Floors:     3,
		},
		Terrain: TerrainConfig{
			ChunkSize:   props.ChunkSize,
			BiomeSize:   props.BiomeSize,
			MaxHeight:   props.MaxHeight,
			CellSize:    props.CellSize,
			GridSize:    props.GridSize,
			Octaves:     props.Octaves,
			Persistence: props.Persistence,
			CornerRise:  props.CornerRise,
		},
		Logging:  logger.DefaultConfig(),
		Database: database.DefaultConfig("data/cleared.db"),
		Preview: PreviewConfig{
			Address:        ":8080",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,

			MaxConnectionsPerIP: 3,
			MaxConnections:      100,
		},
	}
}

// LoadConfig loads configuration from a YAML file, applies environment
// overrides and validates the result. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return config, err
	}

	// The logger owns the LOG_* overrides.
	if config.Logging, err = logger.LoadConfig(path); err != nil {
		return config, err
	}
	if err := applyEnv(config); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *Config) error {
	if seed := os.Getenv("PROCGEN_SEED"); seed != "" {
		n, err := strconv.Atoi(seed)
		if err != nil {
			return fmt.Errorf("PROCGEN_SEED: %w", err)
		}
		config.World.Seed = n
	}
	if strategy := os.Getenv("PROCGEN_DUNGEON_STRATEGY"); strategy != "" {
		config.Dungeon.Strategy = strategy
	}
	if driver := os.Getenv("PROCGEN_DB_DRIVER"); driver != "" {
		config.Database.Driver = strings.ToLower(driver)
	}
	if addr := os.Getenv("PROCGEN_PREVIEW_ADDR"); addr != "" {
		config.Preview.Address = addr
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.Dungeon.StrategyValue(); err != nil {
		return err
	}
	if err := c.Dungeon.Params().Validate(); err != nil {
		return err
	}
	if c.Dungeon.Floors < 1 {
		return fmt.Errorf("%w: floors must be positive, got %d", dungeon.ErrInvalidParams, c.Dungeon.Floors)
	}
	if err := c.Terrain.Properties().Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Preview.MaxMessageSize <= 0 {
		return fmt.Errorf("preview: max_message_size must be positive, got %d", c.Preview.MaxMessageSize)
	}
	if c.Preview.MaxConnectionsPerIP < 0 || c.Preview.MaxConnections < 0 {
		return fmt.Errorf("preview: connection limits must not be negative")
	}
	return nil
}

// StrategyValue parses Strategy.
func (d DungeonConfig) StrategyValue() (dungeon.Strategy, error) {
	return dungeon.ParseStrategy(d.Strategy)
}

// Params converts the section to carver parameters.
func (d DungeonConfig) Params() dungeon.Params {
	return dungeon.Params{
		Width:      d.Width,
		Height:     d.Height,
		Complexity: d.Complexity,
		RoomSize:   d.RoomSize,
		MinTunnel:  d.MinTunnel,
		MaxTunnel:  d.MaxTunnel,
	}
}

// NewCarver builds the configured carver.
func (d DungeonConfig) NewCarver() (dungeon.Carver, error) {
	strategy, err := d.StrategyValue()
	if err != nil {
		return nil, err
	}
	return dungeon.New(strategy, d.Params())
}

// Properties converts the section to terrain properties.
func (t TerrainConfig) Properties() terrain.Properties {
	return terrain.Properties{
		ChunkSize:   t.ChunkSize,
		BiomeSize:   t.BiomeSize,
		MaxHeight:   t.MaxHeight,
		CellSize:    t.CellSize,
		GridSize:    t.GridSize,
		Octaves:     t.Octaves,
		Persistence: t.Persistence,
		CornerRise:  t.CornerRise,
	}
}

// IsOriginAllowed checks if the given origin may open a preview socket.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *PreviewConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // Non-browser clients send no Origin header
	}

	// "http://localhost:3000" -> "localhost:3000"
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
