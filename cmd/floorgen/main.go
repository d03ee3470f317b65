// Command floorgen writes the floors of one dungeon to YAML files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Strowy/ProceduralGame/internal/config"
	"github.com/Strowy/ProceduralGame/internal/dungeon"
	"github.com/Strowy/ProceduralGame/internal/export"
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/logger"
)

func main() {
	configPath := flag.String("config", "procgen.yaml", "Path to config YAML file")
	x := flag.Int("x", 0, "Entrance world X")
	y := flag.Int("y", 0, "Entrance world Y")
	floors := flag.String("floors", "", "Floor range to generate (e.g., 0-2 or 1; default: all)")
	strategy := flag.String("strategy", "", "Carver strategy override (hall_room or tick_budget)")
	outDir := flag.String("out", "", "Output directory (default: data/dungeons/{x}_{y}/)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fail("invalid config: %v", err)
	}
	if *strategy != "" {
		cfg.Dungeon.Strategy = *strategy
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		fail("invalid logging config: %v", err)
	}

	startFloor, endFloor := 0, cfg.Dungeon.Floors-1
	if *floors != "" {
		if startFloor, endFloor, err = parseFloorRange(*floors, cfg.Dungeon.Floors); err != nil {
			fail("invalid floor range: %v", err)
		}
	}

	outputDir := *outDir
	if outputDir == "" {
		outputDir = fmt.Sprintf("data/dungeons/%d_%d", *x, *y)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fail("failed to create output directory: %v", err)
	}

	carver, err := cfg.Dungeon.NewCarver()
	if err != nil {
		fail("%v", err)
	}
	d, err := dungeon.NewDungeon(carver, geom.Pt(*x, *y), cfg.Dungeon.Floors)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Generating floors %d-%d below (%d, %d) with %s\n", startFloor, endFloor, *x, *y, carver.Strategy())
	fmt.Printf("Output directory: %s\n\n", outputDir)

	for n := startFloor; n <= endFloor; n++ {
		fmt.Printf("Generating floor %d... ", n)
		floor, err := d.Floor(n)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		if err := dungeon.Validate(floor.Grid); err != nil {
			// Written anyway so the layout can be inspected.
			logger.Warning("Floor failed validation", "floor", n, "error", err)
		}
		path, err := export.WriteFloorFile(outputDir, floor)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK (%d rooms)\n", len(floor.Rooms))
		logger.Info("Floor written", "floor", n, "path", path, "rooms", len(floor.Rooms))
	}

	fmt.Printf("\nSuccessfully generated %d floor(s)\n", endFloor-startFloor+1)
	logger.Always("Dungeon export finished",
		"entrance", geom.Pt(*x, *y),
		"floors", endFloor-startFloor+1,
		"out", outputDir)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// parseFloorRange parses a 0-based floor range like "0-2" or "1" for a
// dungeon with count floors.
func parseFloorRange(s string, count int) (start, end int, err error) {
	if before, after, ok := strings.Cut(s, "-"); ok {
		start, err = strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start floor: %w", err)
		}
		end, err = strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end floor: %w", err)
		}
	} else {
		start, err = strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid floor number: %w", err)
		}
		end = start
	}

	if start < 0 {
		return 0, 0, fmt.Errorf("floor numbers must be >= 0")
	}
	if end < start {
		return 0, 0, fmt.Errorf("end floor must be >= start floor")
	}
	if end >= count {
		return 0, 0, fmt.Errorf("dungeon has %d floors (0-%d)", count, count-1)
	}
	return start, end, nil
}
