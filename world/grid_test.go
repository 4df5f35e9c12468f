package world

import (
	"math/rand"
	"testing"
)

func TestInBounds(t *testing.T) {
	g := NewGrid(8, 6)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"origin", 0, 0, true},
		{"interior", 4, 3, true},
		{"max corner", 7, 5, true},
		{"x too large", 8, 0, false},
		{"y too large", 0, 6, false},
		{"negative x", -1, 3, false},
		{"negative y", 3, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.InBounds(tt.x, tt.y); got != tt.want {
				t.Errorf("InBounds(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSetGetMove(t *testing.T) {
	g := NewGrid(4, 4)

	if _, ok := g.Get(1, 1); ok {
		t.Fatal("fresh grid reports occupant")
	}

	g.Set(1, 1, 0)
	idx, ok := g.Get(1, 1)
	if !ok || idx != 0 {
		t.Fatalf("Get(1,1) = %d, %v; want 0, true", idx, ok)
	}
	if !g.IsOccupied(1, 1) {
		t.Error("IsOccupied(1,1) = false after Set")
	}

	// Index 0 must round-trip: occupancy storage offsets by one so the
	// zero value stays "empty".
	g.Set(2, 2, 5)
	g.Move(2, 2, 3, 3)

	if g.IsOccupied(2, 2) {
		t.Error("old cell still occupied after Move")
	}
	idx, ok = g.Get(3, 3)
	if !ok || idx != 5 {
		t.Errorf("Get(3,3) = %d, %v; want 5, true", idx, ok)
	}
}

func TestClearPreservesBarriers(t *testing.T) {
	g := NewGrid(4, 4)
	g.AddBarrier(2, 3)
	g.Set(1, 1, 0)
	g.Set(0, 0, 1)

	g.Clear()

	if g.IsOccupied(1, 1) || g.IsOccupied(0, 0) {
		t.Error("occupancy survived Clear")
	}
	if !g.IsBarrier(2, 3) {
		t.Error("barrier did not survive Clear")
	}
}

func TestIsEmptyDistinguishesBarriers(t *testing.T) {
	g := NewGrid(4, 4)
	g.AddBarrier(1, 1)
	g.Set(2, 2, 0)

	tests := []struct {
		name                            string
		x, y                            int
		wantEmpty, wantBarrier, wantOcc bool
	}{
		{"free cell", 0, 0, true, false, false},
		{"barrier", 1, 1, false, true, false},
		{"occupied", 2, 2, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsEmpty(tt.x, tt.y); got != tt.wantEmpty {
				t.Errorf("IsEmpty = %v, want %v", got, tt.wantEmpty)
			}
			if got := g.IsBarrier(tt.x, tt.y); got != tt.wantBarrier {
				t.Errorf("IsBarrier = %v, want %v", got, tt.wantBarrier)
			}
			if got := g.IsOccupied(tt.x, tt.y); got != tt.wantOcc {
				t.Errorf("IsOccupied = %v, want %v", got, tt.wantOcc)
			}
		})
	}
}

func TestCountNeighbors(t *testing.T) {
	g := NewGrid(5, 5)
	g.Set(2, 2, 0) // center, excluded from its own count
	g.Set(1, 2, 1)
	g.Set(3, 3, 2)
	g.Set(0, 0, 3) // outside radius 1 of center
	g.AddBarrier(2, 1)

	tests := []struct {
		name   string
		x, y   int
		radius int
		want   int
	}{
		{"center radius 1", 2, 2, 1, 2},
		{"center radius 2", 2, 2, 2, 3},
		{"corner radius 1", 0, 0, 1, 0},
		{"barriers do not count", 2, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.CountNeighbors(tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("CountNeighbors(%d, %d, %d) = %d, want %d", tt.x, tt.y, tt.radius, got, tt.want)
			}
		})
	}
}

func TestRandomEmptyLocation(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	// Leave exactly one free cell on a 2x2 grid.
	g := NewGrid(2, 2)
	g.AddBarrier(0, 0)
	g.Set(1, 0, 0)
	g.Set(0, 1, 1)

	for i := 0; i < 50; i++ {
		x, y := g.RandomEmptyLocation(rng)
		if x != 1 || y != 1 {
			t.Fatalf("RandomEmptyLocation = (%d, %d), want (1, 1)", x, y)
		}
	}
}
