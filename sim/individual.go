package sim

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/petri/genome"
	"github.com/pthm-cable/petri/neural"
	"github.com/pthm-cable/petri/world"
)

// Individual is one agent: a position on the grid, the brain resolved from
// its genome, and the recurrent actuation state (responsiveness, last
// movement) that carries across ticks. Once Alive goes false it never
// comes back; dead individuals are skipped until the generation ends.
type Individual struct {
	Genome genome.Genome
	X, Y   int
	Brain  *neural.Brain
	Alive  bool

	// LastDX, LastDY record the last successful movement, each in
	// {-1, 0, 1}. A failed move attempt leaves them untouched, so
	// BLOCKED_FORWARD and MOVE_FORWARD keep referencing the stale
	// direction.
	LastDX, LastDY int

	// Responsiveness in [0, 1] scales every movement trigger probability
	// and self-adjusts through the SET_RESPONSIVENESS action. It starts at
	// 0.5 and is never reset mid-generation.
	Responsiveness float64
}

// NewIndividual creates a living agent at (x, y) owning its genome and a
// brain resolved from it for the fixed sensor/action counts.
func NewIndividual(g genome.Genome, x, y, numInternal int) *Individual {
	return &Individual{
		Genome:         g,
		X:              x,
		Y:              y,
		Brain:          neural.NewBrain(g, NumSensors, NumActions, numInternal),
		Alive:          true,
		Responsiveness: 0.5,
	}
}

// ComputeSensors reads the environment into the 12-entry sensor vector,
// each value normalized to roughly [0, 1]. The signed last-move entries
// are rescaled from {-1,0,1} to {0, 0.5, 1}.
func (ind *Individual) ComputeSensors(grid *world.Grid, step, stepsPerGen int, rng *rand.Rand) map[int]float64 {
	w, h := grid.Width(), grid.Height()
	sensors := make(map[int]float64, NumSensors)

	sensors[int(SensorLocX)] = float64(ind.X) / float64(w-1)
	sensors[int(SensorLocY)] = float64(ind.Y) / float64(h-1)

	// Min distance to any of the 4 edges over half the short dimension.
	distToEdge := min(ind.X, ind.Y, w-1-ind.X, h-1-ind.Y)
	maxPossible := min(w, h) / 2
	sensors[int(SensorBoundaryDist)] = float64(distToEdge) / float64(maxPossible)

	sensors[int(SensorAge)] = float64(step) / float64(stepsPerGen)

	sensors[int(SensorLastMoveDirX)] = float64(ind.LastDX+1) / 2
	sensors[int(SensorLastMoveDirY)] = float64(ind.LastDY+1) / 2

	sensors[int(SensorRandom)] = rng.Float64()

	// Nearest-edge sensors resolve ties to the low edge.
	if ind.X <= w-1-ind.X {
		sensors[int(SensorNearestEdgeX)] = 0.0
	} else {
		sensors[int(SensorNearestEdgeX)] = 1.0
	}
	if ind.Y <= h-1-ind.Y {
		sensors[int(SensorNearestEdgeY)] = 0.0
	} else {
		sensors[int(SensorNearestEdgeY)] = 1.0
	}

	// Occupied count among the 4 orthogonal neighbors.
	neighbors := 0
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nx, ny := ind.X+d[0], ind.Y+d[1]
		if grid.InBounds(nx, ny) && grid.IsOccupied(nx, ny) {
			neighbors++
		}
	}
	sensors[int(SensorPopulationDensity)] = float64(neighbors) / 4.0

	fx, fy := ind.X+ind.LastDX, ind.Y+ind.LastDY
	if !grid.InBounds(fx, fy) || !grid.IsEmpty(fx, fy) {
		sensors[int(SensorBlockedForward)] = 1.0
	} else {
		sensors[int(SensorBlockedForward)] = 0.0
	}

	sensors[int(SensorOscillator)] = (math.Sin(2*math.Pi*float64(step)/float64(stepsPerGen)) + 1) / 2

	return sensors
}

// ExecuteActions realizes the brain's five tanh-ranged outputs. Each of the
// four movement actions fires independently with probability
// |value| * responsiveness; fired contributions sum into a pending delta
// before the per-axis clamp to {-1, 0, 1}. SET_RESPONSIVENESS always
// applies. The move itself only happens when the target cell is in bounds
// and empty; on failure the agent stays put and the last-move direction is
// left as it was.
func (ind *Individual) ExecuteActions(outputs map[int]float64, grid *world.Grid, rng *rand.Rand) {
	moveDX, moveDY := 0, 0

	v := outputs[int(ActionMoveX)]
	if rng.Float64() < math.Abs(v)*ind.Responsiveness {
		if v > 0 {
			moveDX++
		} else {
			moveDX--
		}
	}

	v = outputs[int(ActionMoveY)]
	if rng.Float64() < math.Abs(v)*ind.Responsiveness {
		if v > 0 {
			moveDY++
		} else {
			moveDY--
		}
	}

	v = outputs[int(ActionMoveForward)]
	if rng.Float64() < math.Abs(v)*ind.Responsiveness {
		moveDX += ind.LastDX
		moveDY += ind.LastDY
	}

	v = outputs[int(ActionMoveRandom)]
	if rng.Float64() < math.Abs(v)*ind.Responsiveness {
		moveDX += rng.Intn(3) - 1
		moveDY += rng.Intn(3) - 1
	}

	// Blend, not assign: the new responsiveness is the average of the old
	// one and the rescaled output.
	v = outputs[int(ActionSetResponsiveness)]
	ind.Responsiveness = (ind.Responsiveness + (v+1)/2) / 2

	moveDX = clampDelta(moveDX)
	moveDY = clampDelta(moveDY)

	if moveDX == 0 && moveDY == 0 {
		return
	}

	newX, newY := ind.X+moveDX, ind.Y+moveDY
	if grid.InBounds(newX, newY) && grid.IsEmpty(newX, newY) {
		grid.Move(ind.X, ind.Y, newX, newY)
		ind.X = newX
		ind.Y = newY
		ind.LastDX = moveDX
		ind.LastDY = moveDY
	}
}

// TakeStep runs the full sensor -> brain -> action cycle exactly once.
// Dead individuals do nothing.
func (ind *Individual) TakeStep(grid *world.Grid, step, stepsPerGen int, rng *rand.Rand) {
	if !ind.Alive {
		return
	}

	sensors := ind.ComputeSensors(grid, step, stepsPerGen, rng)
	outputs := ind.Brain.Evaluate(sensors)
	ind.ExecuteActions(outputs, grid, rng)
}

func clampDelta(d int) int {
	if d > 1 {
		return 1
	}
	if d < -1 {
		return -1
	}
	return d
}
