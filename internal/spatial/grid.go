// Package spatial implements a grid-based spatial index rebuilt from
// entity positions, used to answer proximity queries without scanning
// every entity.
package spatial

import "github.com/unmarco/tickengine/internal/ecs"

// PositionFunc reads an entity's coordinates, reporting ok=false for an
// entity that has no position.
type PositionFunc func(w *ecs.World, e ecs.Entity) (x, y int, ok bool)

type cell struct {
	x, y int
}

// Grid buckets entities by integer coordinate into fixed-size cells.
type Grid struct {
	cellSize int
	position PositionFunc
	cells    map[cell][]ecs.Entity
}

// New constructs an empty grid with the given cell size (in world
// units) and the callable used to read entity positions on rebuild.
func New(cellSize int, position PositionFunc) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{cellSize: cellSize, position: position, cells: make(map[cell][]ecs.Entity)}
}

func (g *Grid) cellFor(x, y int) cell {
	return cell{x: floorDiv(x, g.cellSize), y: floorDiv(y, g.cellSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Rebuild discards every bucket and re-derives them from every alive
// entity's current position.
func (g *Grid) Rebuild(w *ecs.World) {
	g.cells = make(map[cell][]ecs.Entity)
	for _, e := range w.AliveEntities() {
		x, y, ok := g.position(w, e)
		if !ok {
			continue
		}
		c := g.cellFor(x, y)
		g.cells[c] = append(g.cells[c], e)
	}
}

// Near returns every entity sharing the cell containing (x, y).
func (g *Grid) Near(x, y int) []ecs.Entity {
	c := g.cellFor(x, y)
	out := g.cells[c]
	return append([]ecs.Entity(nil), out...)
}
