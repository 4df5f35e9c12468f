package sim

import "strings"

// Selection is the spatial survival predicate applied to each living
// individual's final position when a generation ends.
type Selection int

const (
	SelectRightHalf Selection = iota
	SelectLeftHalf
	SelectCenterCircle
	SelectCorners
	SelectRightQuarter
)

var selectionNames = map[Selection]string{
	SelectRightHalf:    "right_half",
	SelectLeftHalf:     "left_half",
	SelectCenterCircle: "center_circle",
	SelectCorners:      "corners",
	SelectRightQuarter: "right_quarter",
}

func (s Selection) String() string {
	if name, ok := selectionNames[s]; ok {
		return name
	}
	return "none"
}

// ParseSelection resolves a criterion by name, case-insensitively. Unknown
// names report ok=false and map to a value outside the known set, which
// Survives treats as "everyone survives".
func ParseSelection(name string) (Selection, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range selectionNames {
		if n == name {
			return s, true
		}
	}
	return Selection(-1), false
}

// Survives evaluates the predicate against a position on a w x h grid.
// Boundary arithmetic uses integer division, so odd dimensions bias the
// way the original criteria did. An unrecognized criterion admits
// everyone: no selection means no evolution, not a crash.
func (s Selection) Survives(x, y, w, h int) bool {
	switch s {
	case SelectRightHalf:
		return x >= w/2

	case SelectLeftHalf:
		return x < w/2

	case SelectCenterCircle:
		cx, cy := float64(w)/2, float64(h)/2
		radius := float64(min(w, h)) / 4
		dx, dy := float64(x)-cx, float64(y)-cy
		return dx*dx+dy*dy <= radius*radius

	case SelectCorners:
		qw, qh := w/4, h/4
		inLeft := x < qw
		inRight := x >= w-qw
		inBottom := y < qh
		inTop := y >= h-qh
		return (inLeft || inRight) && (inBottom || inTop)

	case SelectRightQuarter:
		return x >= w*3/4

	default:
		return true
	}
}
