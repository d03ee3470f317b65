package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Strowy/ProceduralGame/internal/dungeon"
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/grid"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

// Point is written as a flow pair [x, y].
type Point [2]int

// Rect is written as a flow list [minX, minY, maxX, maxY].
type Rect [4]int

// HeightRow is one row of terrain heights, written on a single line.
type HeightRow []int

func (p Point) MarshalYAML() (any, error)     { return flowInts(p[:]), nil }
func (r Rect) MarshalYAML() (any, error)      { return flowInts(r[:]), nil }
func (h HeightRow) MarshalYAML() (any, error) { return flowInts(h), nil }

func flowInts(values []int) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(v),
		})
	}
	return node
}

func toPoint(p geom.Point) Point { return Point{p.X, p.Y} }

func toRect(r geom.Rect) Rect { return Rect{r.MinX, r.MinY, r.MaxX, r.MaxY} }

// FloorDocument is the YAML form of a dungeon floor.
type FloorDocument struct {
	Floor    int       `yaml:"floor"`
	Strategy string    `yaml:"strategy"`
	Seed     Point     `yaml:"seed"`
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	Entrance *Point    `yaml:"entrance,omitempty"`
	Exit     *Point    `yaml:"exit,omitempty"`
	Rooms    []Rect    `yaml:"rooms"`
	Legend   yaml.Node `yaml:"legend"`
	Rows     []string  `yaml:"rows"`
}

// NewFloorDocument converts a generated floor.
func NewFloorDocument(f *dungeon.Floor) *FloorDocument {
	doc := &FloorDocument{
		Floor:    f.Number,
		Strategy: f.Strategy.String(),
		Seed:     toPoint(f.Seed),
		Width:    f.Grid.Width(),
		Height:   f.Grid.Height(),
		Rooms:    make([]Rect, 0, len(f.Rooms)),
		Legend:   floorLegend(),
		Rows:     RenderFloor(f.Grid),
	}
	if found := f.Grid.Find(grid.Entrance); len(found) > 0 {
		p := toPoint(found[0])
		doc.Entrance = &p
	}
	if found := f.Grid.Find(grid.Exit); len(found) > 0 {
		p := toPoint(found[0])
		doc.Exit = &p
	}
	for _, r := range f.Rooms {
		doc.Rooms = append(doc.Rooms, toRect(r))
	}
	return doc
}

// floorLegend lists glyphs in a fixed order.
func floorLegend() yaml.Node {
	node := yaml.Node{Kind: yaml.MappingNode}
	for _, c := range []grid.Cell{grid.Floor, grid.Wall, grid.Entrance, grid.Exit, grid.Rock} {
		addStringField(&node, string(FloorGlyph(c)), c.String())
	}
	return node
}

// WriteFloor writes f as a commented YAML document.
func WriteFloor(w io.Writer, f *dungeon.Floor) error {
	doc := NewFloorDocument(f)

	fmt.Fprintf(w, "# Floor %d - %s strategy\n", doc.Floor, doc.Strategy)
	fmt.Fprintf(w, "# Generated from entrance: (%d, %d)\n", doc.Seed[0], doc.Seed[1])
	fmt.Fprintf(w, "# Room count: %d\n\n", len(doc.Rooms))

	return encode(w, doc)
}

// FloorFileName is the file WriteFloorFile uses for floor n.
func FloorFileName(n int) string {
	return fmt.Sprintf("floor_%d.yaml", n)
}

// WriteFloorFile writes f into dir and returns the file path.
func WriteFloorFile(dir string, f *dungeon.Floor) (string, error) {
	path := filepath.Join(dir, FloorFileName(f.Number))
	return path, writeFile(path, func(w io.Writer) error { return WriteFloor(w, f) })
}

// PortalDocument is one dungeon entrance inside a chunk.
type PortalDocument struct {
	Entrance Point `yaml:"entrance"`
	Cleared  bool  `yaml:"cleared"`
}

// ChunkDocument is the YAML form of a terrain chunk.
type ChunkDocument struct {
	Chunk     Point            `yaml:"chunk"`
	WorldSeed int              `yaml:"world_seed"`
	Bounds    Rect             `yaml:"bounds"`
	Portals   []PortalDocument `yaml:"portals,omitempty"`
	Heights   []HeightRow      `yaml:"heights"`
	Rows      []string         `yaml:"rows"`
}

// NewChunkDocument converts a sampled chunk.
func NewChunkDocument(c *terrain.Chunk, worldSeed int) *ChunkDocument {
	doc := &ChunkDocument{
		Chunk:     toPoint(c.Coord),
		WorldSeed: worldSeed,
		Bounds:    toRect(c.Bounds),
		Heights:   make([]HeightRow, 0, c.Bounds.Height()),
		Rows:      RenderChunk(c),
	}
	for _, p := range c.Portals {
		doc.Portals = append(doc.Portals, PortalDocument{Entrance: toPoint(p.Entrance), Cleared: p.Cleared})
	}
	for y := c.Bounds.MinY; y <= c.Bounds.MaxY; y++ {
		row := make(HeightRow, 0, c.Bounds.Width())
		for x := c.Bounds.MinX; x <= c.Bounds.MaxX; x++ {
			row = append(row, c.At(x, y).Height)
		}
		doc.Heights = append(doc.Heights, row)
	}
	return doc
}

// WriteChunk writes c as a commented YAML document.
func WriteChunk(w io.Writer, c *terrain.Chunk, worldSeed int) error {
	doc := NewChunkDocument(c, worldSeed)

	fmt.Fprintf(w, "# Chunk (%d, %d)\n", doc.Chunk[0], doc.Chunk[1])
	fmt.Fprintf(w, "# Generated with seed: %d\n", worldSeed)
	fmt.Fprintf(w, "# Portal count: %d\n\n", len(doc.Portals))

	return encode(w, doc)
}

// ChunkFileName is the file WriteChunkFile uses for chunk (cx, cy).
func ChunkFileName(coord geom.Point) string {
	return fmt.Sprintf("chunk_%d_%d.yaml", coord.X, coord.Y)
}

// WriteChunkFile writes c into dir and returns the file path.
func WriteChunkFile(dir string, c *terrain.Chunk, worldSeed int) (string, error) {
	path := filepath.Join(dir, ChunkFileName(c.Coord))
	return path, writeFile(path, func(w io.Writer) error { return WriteChunk(w, c, worldSeed) })
}

func encode(w io.Writer, doc any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
