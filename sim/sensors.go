// Package sim drives the simulation: individuals with their sensor/action
// cycle, spatial selection predicates, and the generation lifecycle engine.
package sim

// Sensor identifies one input of an individual's brain. The set is closed:
// sensors are indexed array slots, and the names exist for diagnostics and
// display only.
type Sensor int

const (
	SensorLocX Sensor = iota
	SensorLocY
	SensorBoundaryDist
	SensorAge
	SensorLastMoveDirX
	SensorLastMoveDirY
	SensorRandom
	SensorNearestEdgeX
	SensorNearestEdgeY
	SensorPopulationDensity
	SensorBlockedForward
	SensorOscillator

	// NumSensors is the fixed sensor count every brain is resolved against.
	NumSensors = int(SensorOscillator) + 1
)

var sensorNames = [NumSensors]string{
	"LOC_X",
	"LOC_Y",
	"BOUNDARY_DIST",
	"AGE",
	"LAST_MOVE_DIR_X",
	"LAST_MOVE_DIR_Y",
	"RANDOM",
	"NEAREST_EDGE_X",
	"NEAREST_EDGE_Y",
	"POPULATION_DENSITY",
	"BLOCKED_FORWARD",
	"OSCILLATOR",
}

func (s Sensor) String() string {
	if s < 0 || int(s) >= NumSensors {
		return "UNKNOWN_SENSOR"
	}
	return sensorNames[s]
}

// Action identifies one output of an individual's brain.
type Action int

const (
	ActionMoveX Action = iota
	ActionMoveY
	ActionMoveForward
	ActionMoveRandom
	ActionSetResponsiveness

	// NumActions is the fixed action count every brain is resolved against.
	NumActions = int(ActionSetResponsiveness) + 1
)

var actionNames = [NumActions]string{
	"MOVE_X",
	"MOVE_Y",
	"MOVE_FORWARD",
	"MOVE_RANDOM",
	"SET_RESPONSIVENESS",
}

func (a Action) String() string {
	if a < 0 || int(a) >= NumActions {
		return "UNKNOWN_ACTION"
	}
	return actionNames[a]
}
