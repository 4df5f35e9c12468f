// Package world provides the bounded 2D occupancy grid the simulation
// runs on: agent positions, permanent barriers, and spawn-site sampling.
package world

import "math/rand"

// Grid is a width x height occupancy map plus a set of permanent barrier
// cells. A cell holds at most one occupant; barriers never hold occupants.
// Occupancy mutates only through Set, Move and Clear, and barriers are
// immutable once a run starts. The grid assumes single-threaded sequential
// callers; its operations are not reentrant-safe.
type Grid struct {
	width  int
	height int

	// cells stores occupant index+1 so the zero value means empty.
	cells    []int
	barriers map[[2]int]struct{}
}

// NewGrid creates an empty grid with no barriers.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		cells:    make([]int, width*height),
		barriers: make(map[[2]int]struct{}),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies within [0,width) x [0,height).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsEmpty reports whether the cell is unoccupied and not a barrier.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.cells[g.index(x, y)] == 0 && !g.IsBarrier(x, y)
}

// IsBarrier reports whether the cell is a permanent barrier.
func (g *Grid) IsBarrier(x, y int) bool {
	_, ok := g.barriers[[2]int{x, y}]
	return ok
}

// IsOccupied reports whether an agent occupies the cell.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.cells[g.index(x, y)] != 0
}

// Set places the agent with the given population index at (x, y).
func (g *Grid) Set(x, y, index int) {
	g.cells[g.index(x, y)] = index + 1
}

// Get returns the population index of the occupant at (x, y). The second
// return value is false when the cell is empty.
func (g *Grid) Get(x, y int) (int, bool) {
	v := g.cells[g.index(x, y)]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

// Move relocates whatever occupies (oldX, oldY) to (newX, newY) and clears
// the old cell. It does not re-validate the target; callers must already
// have checked that the destination is in bounds and empty.
func (g *Grid) Move(oldX, oldY, newX, newY int) {
	g.cells[g.index(newX, newY)] = g.cells[g.index(oldX, oldY)]
	g.cells[g.index(oldX, oldY)] = 0
}

// Clear wipes all occupancy. Barriers survive.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

// AddBarrier marks (x, y) as a permanent obstacle. Barriers are placed
// during setup, before the first spawn.
func (g *Grid) AddBarrier(x, y int) {
	g.barriers[[2]int{x, y}] = struct{}{}
}

// RandomEmptyLocation rejection-samples uniformly until it finds an empty,
// non-barrier cell. It loops forever on a saturated grid; keeping the
// population well below width*height is the caller's obligation.
func (g *Grid) RandomEmptyLocation(rng *rand.Rand) (int, int) {
	for {
		x := rng.Intn(g.width)
		y := rng.Intn(g.height)
		if g.IsEmpty(x, y) {
			return x, y
		}
	}
}

// CountNeighbors counts occupied cells in the square neighborhood of the
// given radius, excluding (x, y) itself.
func (g *Grid) CountNeighbors(x, y, radius int) int {
	count := 0
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.InBounds(nx, ny) && g.IsOccupied(nx, ny) {
				count++
			}
		}
	}
	return count
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}
