package pogo

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/lafriks/go-tiled"
	"github.com/setanarut/v"
)

// TileGrid is a TileSource backed by a dense grid of int tile values with
// unit-sized cells. Cell (0,0) covers world coordinates [0,1)x[0,1) and rows
// grow upward. Zero means empty; any other value blocks by default, subject
// to each body's tile predicate.
type TileGrid struct {
	width, height int
	cells         []int
}

// NewTileGrid returns an empty grid of the given dimensions in cells.
func NewTileGrid(width, height int) *TileGrid {
	if width < 0 || height < 0 {
		panic("pogo: tile grid dimensions must be non-negative")
	}
	return &TileGrid{
		width:  width,
		height: height,
		cells:  make([]int, width*height),
	}
}

// Width returns the grid width in cells.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *TileGrid) Height() int {
	return g.height
}

// Tile returns the value at cell (x, y), or 0 outside the grid.
func (g *TileGrid) Tile(x, y int) int {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0
	}
	return g.cells[y*g.width+x]
}

// SetTile sets the value at cell (x, y). Setting a cell outside the grid is
// a contract violation.
func (g *TileGrid) SetTile(x, y, value int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		panic("pogo: tile out of grid range")
	}
	g.cells[y*g.width+x] = value
}

// SetRect fills the cell rectangle [x, x+w) x [y, y+h) with value.
func (g *TileGrid) SetRect(x, y, w, h, value int) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			g.SetTile(cx, cy, value)
		}
	}
}

// Blocked reports whether the box centered at pos with the given size
// overlaps a blocking tile. When body is non-nil its tile predicate decides
// per tile; otherwise every non-zero value blocks.
func (g *TileGrid) Blocked(pos, size v.Vec, body *Body) bool {
	minX := int(math.Max(math.Floor(pos.X-size.X/2), 0))
	minY := int(math.Max(math.Floor(pos.Y-size.Y/2), 0))
	maxX := math.Min(pos.X+size.X/2, float64(g.width))
	maxY := math.Min(pos.Y+size.Y/2, float64(g.height))

	for y := minY; float64(y) < maxY; y++ {
		for x := minX; float64(x) < maxX; x++ {
			tile := g.cells[y*g.width+x]
			if tile == 0 {
				continue
			}
			if body == nil || body.CollidesWithTile(tile, v.Vec{X: float64(x), Y: float64(y)}) {
				return true
			}
		}
	}
	return false
}

// Raycast walks the grid from start toward end and returns the center of
// the first tile that stops the ray, consulting body's raycast predicate
// when body is non-nil. ok is false when the ray reaches end unobstructed.
func (g *TileGrid) Raycast(start, end v.Vec, body *Body) (hit v.Vec, ok bool) {
	delta := end.Sub(start)
	totalLength := delta.Mag()
	if totalLength == 0 {
		return v.Vec{}, false
	}
	norm := delta.Scale(1 / totalLength)

	unitX := math.Abs(1 / norm.X)
	unitY := math.Abs(1 / norm.Y)
	pos := v.Vec{X: math.Floor(start.X), Y: math.Floor(start.Y)}

	xi := unitX * (pos.X - start.X + 1)
	if delta.X < 0 {
		xi = unitX * (start.X - pos.X)
	}
	yi := unitY * (pos.Y - start.Y + 1)
	if delta.Y < 0 {
		yi = unitY * (start.Y - pos.Y)
	}

	for {
		tile := g.Tile(int(pos.X), int(pos.Y))
		if tile != 0 && (body == nil || body.RaycastHits(tile, pos)) {
			return pos.Add(v.Vec{X: 0.5, Y: 0.5}), true
		}

		if xi > totalLength && yi > totalLength {
			return v.Vec{}, false
		}
		if xi > yi {
			pos.Y += sign(delta.Y)
			yi += unitY
		} else {
			pos.X += sign(delta.X)
			xi += unitX
		}
	}
}

// LoadTileGrid parses a TMX file and builds a grid from the named tile
// layer. Tile values are the tileset-local tile ID plus one, so every placed
// tile blocks. It takes an fs.FS so callers can pass embed.FS or os.DirFS.
//
// TMX rows grow downward; they are flipped so the grid stays y-up.
func LoadTileGrid(fsys fs.FS, tmxPath, layerName string) (*TileGrid, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != layerName {
			continue
		}
		g := NewTileGrid(levelMap.Width, levelMap.Height)
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				g.SetTile(x, levelMap.Height-1-y, int(tile.ID)+1)
			}
		}
		return g, nil
	}
	return nil, fmt.Errorf("layer %q not found in %s", layerName, tmxPath)
}
