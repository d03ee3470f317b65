package dungeon

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParams is returned when carver parameters cannot produce a floor.
var ErrInvalidParams = errors.New("invalid dungeon parameters")

// Strategy selects a carving algorithm.
type Strategy int

const (
	// TickBudget is the cellular carver driven by a tick counter and fail budget.
	TickBudget Strategy = iota
	// HallRoom is the carver that tracks an explicit list of placed rooms.
	HallRoom
)

// String returns the string representation of a Strategy
func (s Strategy) String() string {
	switch s {
	case TickBudget:
		return "tick_budget"
	case HallRoom:
		return "hall_room"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name as written by String.
// Hyphens and case are ignored.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "tick_budget", "tick":
		return TickBudget, nil
	case "hall_room", "hallroom":
		return HallRoom, nil
	default:
		return 0, fmt.Errorf("unknown dungeon strategy %q", name)
	}
}

// minDimension keeps the 5-cell access buffer and a minimum room inside the map.
const minDimension = 12

// Params are the construction parameters shared by both carvers.
type Params struct {
	Width      int // Map width in cells
	Height     int // Map height in cells
	Complexity int // Number of room placement passes
	RoomSize   int // Room radius; rooms are at most 2*RoomSize+1 cells per side
	MinTunnel  int // Shortest corridor
	MaxTunnel  int // Tick carver: extra length range. Hall carver: longest corridor.
}

// DefaultParams returns the parameters the game ships with.
func DefaultParams() Params {
	return Params{
		Width:      64,
		Height:     64,
		Complexity: 20,
		RoomSize:   3,
		MinTunnel:  3,
		MaxTunnel:  6,
	}
}

// Validate checks the parameters. Errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	if p.Width < minDimension || p.Height < minDimension {
		return fmt.Errorf("%w: map %dx%d is smaller than %dx%d", ErrInvalidParams, p.Width, p.Height, minDimension, minDimension)
	}
	if p.Complexity < 1 {
		return fmt.Errorf("%w: complexity must be positive, got %d", ErrInvalidParams, p.Complexity)
	}
	// The seed room is centred within a quarter of the map and must stay on it.
	if limit := min(p.Width, p.Height)/4 - 1; p.RoomSize < 1 || p.RoomSize > limit {
		return fmt.Errorf("%w: room size %d outside [1, %d]", ErrInvalidParams, p.RoomSize, limit)
	}
	if p.MinTunnel < minHallLength {
		return fmt.Errorf("%w: min tunnel %d is shorter than %d", ErrInvalidParams, p.MinTunnel, minHallLength)
	}
	if p.MaxTunnel < p.MinTunnel {
		return fmt.Errorf("%w: max tunnel %d is less than min tunnel %d", ErrInvalidParams, p.MaxTunnel, p.MinTunnel)
	}
	return nil
}
