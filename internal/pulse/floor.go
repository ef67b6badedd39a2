package pulse

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// FloorRenderer draws a top-down character map of the office floor. The
// floor spans [-HalfExtent, HalfExtent] on X and Z. It is also a Picker
// working in floor coordinates.
type FloorRenderer struct {
	Cols, Rows int
	HalfExtent float64

	// PickRadius is how close to an avatar a pick must land.
	PickRadius float64
}

// NewFloorRenderer returns a renderer for the default 8x8 floor.
func NewFloorRenderer() *FloorRenderer {
	return &FloorRenderer{Cols: 33, Rows: 17, HalfExtent: 4, PickRadius: 0.5}
}

// Cell returns the grid cell for floor point (x, z), clamped to the grid.
func (r *FloorRenderer) Cell(x, z float64) (col, row int) {
	col = int(math.Round((x + r.HalfExtent) / (2 * r.HalfExtent) * float64(r.Cols-1)))
	row = int(math.Round((z + r.HalfExtent) / (2 * r.HalfExtent) * float64(r.Rows-1)))
	return clamp(col, 0, r.Cols-1), clamp(row, 0, r.Rows-1)
}

// Point returns the floor point at the center of a grid cell.
func (r *FloorRenderer) Point(col, row int) (x, z float64) {
	x = float64(col)/float64(r.Cols-1)*2*r.HalfExtent - r.HalfExtent
	z = float64(row)/float64(r.Rows-1)*2*r.HalfExtent - r.HalfExtent
	return x, z
}

// Render writes the map followed by a legend line per entity.
func (r *FloorRenderer) Render(w io.Writer, f Frame) error {
	grid := make([][]rune, r.Rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat("·", r.Cols))
	}

	for i, e := range f.Entities {
		col, row := r.Cell(e.Position.X, e.Position.Z)
		grid[row][col] = marker(i)
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	for i, e := range f.Entities {
		fmt.Fprintf(&b, "%c %-14s %-12s %s %3.0f%%\n", marker(i), e.Name, e.Department, e.Mood.Emoji(), e.Activity*100)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Pick returns the entity nearest to floor point (x, z) within PickRadius.
func (r *FloorRenderer) Pick(f Frame, x, z float64) (string, bool) {
	best := ""
	bestDist := math.Inf(1)
	for _, e := range f.Entities {
		d := math.Hypot(e.Position.X-x, e.Position.Z-z)
		if d <= r.PickRadius && d < bestDist {
			best, bestDist = e.ID, d
		}
	}
	return best, best != ""
}

func marker(i int) rune {
	if i < 9 {
		return rune('1' + i)
	}
	return rune('a' + i - 9)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
