// Command mapgen prints a dungeon floor or a terrain region as ASCII, and can
// write the terrain chunks it covers as YAML.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Strowy/ProceduralGame/internal/config"
	"github.com/Strowy/ProceduralGame/internal/database"
	"github.com/Strowy/ProceduralGame/internal/dungeon"
	"github.com/Strowy/ProceduralGame/internal/export"
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/logger"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

func main() {
	configPath := flag.String("config", "procgen.yaml", "Path to config YAML file")
	mode := flag.String("mode", "terrain", "What to draw: floor or terrain")
	x := flag.Int("x", 0, "Floor: entrance X. Terrain: region min X")
	y := flag.Int("y", 0, "Floor: entrance Y. Terrain: region min Y")
	floorNum := flag.Int("floor", 0, "Floor number (floor mode)")
	width := flag.Int("w", 64, "Region width (terrain mode)")
	height := flag.Int("h", 32, "Region height (terrain mode)")
	useDB := flag.Bool("cleared", false, "Mark cleared portals from the configured database (terrain mode)")
	yamlDir := flag.String("yaml", "", "Also write covered chunks as YAML into this directory (terrain mode)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fail("invalid config: %v", err)
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		fail("invalid logging config: %v", err)
	}

	switch *mode {
	case "floor":
		err = drawFloor(cfg, geom.Pt(*x, *y), *floorNum)
	case "terrain":
		if *width < 1 || *height < 1 {
			fail("region must be at least 1x1, got %dx%d", *width, *height)
		}
		region := geom.NewRect(*x, *y, *x+*width-1, *y+*height-1)
		err = drawTerrain(cfg, region, *useDB, *yamlDir)
	default:
		fail("unknown mode %q (want floor or terrain)", *mode)
	}
	if err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func drawFloor(cfg *config.Config, entrance geom.Point, n int) error {
	carver, err := cfg.Dungeon.NewCarver()
	if err != nil {
		return err
	}
	d, err := dungeon.NewDungeon(carver, entrance, cfg.Dungeon.Floors)
	if err != nil {
		return err
	}
	floor, err := d.Floor(n)
	if err != nil {
		return err
	}

	fmt.Printf("Floor %d below (%d, %d) - %s, %d rooms\n\n", n, entrance.X, entrance.Y, floor.Strategy, len(floor.Rooms))
	fmt.Print(export.Join(export.RenderFloor(floor.Grid)))

	s := dungeon.Inspect(floor.Grid)
	fmt.Printf("\nWalkable: %d  Reachable: %d\n", s.Walkable, s.Reachable)
	if err := dungeon.Validate(floor.Grid); err != nil {
		fmt.Printf("Validation: %v\n", err)
	}
	return nil
}

func drawTerrain(cfg *config.Config, region geom.Rect, useDB bool, yamlDir string) error {
	var opts []terrain.Option
	if useDB {
		db, err := database.OpenWithConfig(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, terrain.WithCleared(db.ClearedFunc()))
	}

	field, err := terrain.NewField(cfg.Terrain.Properties(), cfg.World.Seed, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("Terrain %v (seed %d)\n\n", region, cfg.World.Seed)
	fmt.Print(export.Join(export.RenderRegion(field, region)))
	fmt.Println("\n~ water  O portal  o cleared portal  + surround  H surround corner  0-7 band")

	if yamlDir == "" {
		return nil
	}
	if err := os.MkdirAll(yamlDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lo := field.ChunkOf(region.MinX, region.MinY)
	hi := field.ChunkOf(region.MaxX, region.MaxY)
	written := 0
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			path, err := export.WriteChunkFile(yamlDir, field.Chunk(cx, cy), cfg.World.Seed)
			if err != nil {
				return err
			}
			logger.Debug("Chunk written", "path", path)
			written++
		}
	}
	logger.Always("Terrain export finished", "chunks", written, "out", yamlDir)
	return nil
}
