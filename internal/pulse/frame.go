// Package pulse turns roster snapshots into per-frame render state for the
// office pulse view. Drawing and hit-testing are delegated to a Renderer and
// a Picker.
package pulse

import (
	"fmt"
	"math"
	"time"

	"github.com/dyluth/axero/pkg/workspace"
)

// Color is a 24-bit RGB value.
type Color uint32

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

var departmentColors = map[workspace.Department]Color{
	workspace.DepartmentEngineering: 0x00ffff,
	workspace.DepartmentMarketing:   0xff6b35,
	workspace.DepartmentSales:       0x90ee90,
	workspace.DepartmentHR:          0xffd700,
}

// Neutral is used for departments without an assigned color.
const Neutral Color = 0x808080

// DepartmentColor returns the avatar color for d.
func DepartmentColor(d workspace.Department) Color {
	if c, ok := departmentColors[d]; ok {
		return c
	}
	return Neutral
}

// Vec3 is a point in scene space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Entity is one employee avatar for a single frame.
type Entity struct {
	ID          string
	Name        string
	Department  workspace.Department
	Mood        workspace.Mood
	Activity    float64
	Position    Vec3
	Color       Color
	Scale       float64
	RingOpacity float64
	Rotation    float64 // radians about Y
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Camera   Vec3
	Entities []Entity
}

const (
	cameraHeight  = 5.0
	cameraRadius  = 6.0
	cameraSpeed   = 0.2
	pulseSpeed    = 3.0
	pulseStrength = 0.1
	spinSpeed     = 0.5
)

// BuildFrame computes avatar transforms for snapshot at time t. The result
// depends only on its inputs.
func BuildFrame(snapshot workspace.RosterSnapshot, t time.Time) Frame {
	secs := float64(t.UnixMilli()) / 1000

	entities := make([]Entity, len(snapshot.Employees))
	for i, e := range snapshot.Employees {
		entities[i] = Entity{
			ID:         e.ID,
			Name:       e.Name,
			Department: e.Department,
			Mood:       e.Mood,
			Activity:   e.ActivityLevel,
			Position: Vec3{
				X: e.Position.X,
				Y: e.Position.Y + e.VerticalOffset,
				Z: e.Position.Z,
			},
			Color:       DepartmentColor(e.Department),
			Scale:       1 + math.Sin(secs*pulseSpeed+float64(i))*pulseStrength*e.ActivityLevel,
			RingOpacity: e.ActivityLevel * 0.5,
			Rotation:    secs * spinSpeed,
		}
	}

	return Frame{
		Camera: Vec3{
			X: math.Sin(secs*cameraSpeed) * cameraRadius,
			Y: cameraHeight,
			Z: math.Cos(secs*cameraSpeed) * cameraRadius,
		},
		Entities: entities,
	}
}
