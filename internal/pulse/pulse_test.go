package pulse

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dyluth/axero/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	snapshot workspace.RosterSnapshot
}

func (s *staticSource) Snapshot() workspace.RosterSnapshot { return s.snapshot }

type fixedPicker struct {
	id string
	ok bool
}

func (p fixedPicker) Pick(Frame, float64, float64) (string, bool) { return p.id, p.ok }

func testSnapshot() workspace.RosterSnapshot {
	return workspace.RosterSnapshot{Employees: []workspace.Employee{
		{ID: "1", Name: "Alex Chen", Department: workspace.DepartmentEngineering, Position: workspace.Position{X: 2, Z: 1}, Mood: workspace.MoodHappy, ActivityLevel: 0.8, VerticalOffset: 0.05},
		{ID: "3", Name: "Mike Davis", Department: workspace.DepartmentSales, Position: workspace.Position{X: 1, Z: -1}, Mood: workspace.MoodCool, ActivityLevel: 0.4},
	}}
}

func TestDepartmentColor(t *testing.T) {
	assert.Equal(t, "#00ffff", DepartmentColor(workspace.DepartmentEngineering).Hex())
	assert.Equal(t, "#ff6b35", DepartmentColor(workspace.DepartmentMarketing).Hex())
	assert.Equal(t, "#90ee90", DepartmentColor(workspace.DepartmentSales).Hex())
	assert.Equal(t, "#ffd700", DepartmentColor(workspace.DepartmentHR).Hex())
	assert.Equal(t, Neutral, DepartmentColor("legal"))
}

func TestBuildFrame(t *testing.T) {
	at := time.UnixMilli(12_500)
	secs := 12.5
	f := BuildFrame(testSnapshot(), at)

	assert.InDelta(t, math.Sin(secs*0.2)*6, f.Camera.X, 1e-9)
	assert.Equal(t, 5.0, f.Camera.Y)
	assert.InDelta(t, math.Cos(secs*0.2)*6, f.Camera.Z, 1e-9)

	require.Len(t, f.Entities, 2)
	alex := f.Entities[0]
	assert.Equal(t, Vec3{X: 2, Y: 0.05, Z: 1}, alex.Position)
	assert.Equal(t, Color(0x00ffff), alex.Color)
	assert.InDelta(t, 1+math.Sin(secs*3)*0.1*0.8, alex.Scale, 1e-9)
	assert.InDelta(t, 0.4, alex.RingOpacity, 1e-9)
	assert.InDelta(t, secs*0.5, alex.Rotation, 1e-9)

	mike := f.Entities[1]
	assert.InDelta(t, 1+math.Sin(secs*3+1)*0.1*0.4, mike.Scale, 1e-9)
	assert.InDelta(t, 0.2, mike.RingOpacity, 1e-9)

	assert.Equal(t, f, BuildFrame(testSnapshot(), at), "frames are reproducible")
}

func TestScaleBounds(t *testing.T) {
	snapshot := testSnapshot()
	for ms := int64(0); ms < 10_000; ms += 37 {
		for _, e := range BuildFrame(snapshot, time.UnixMilli(ms)).Entities {
			assert.GreaterOrEqual(t, e.Scale, 0.9)
			assert.LessOrEqual(t, e.Scale, 1.1)
		}
	}
}

func TestViewClick(t *testing.T) {
	src := &staticSource{snapshot: testSnapshot()}
	now := func() time.Time { return time.UnixMilli(0) }

	t.Run("known id selects", func(t *testing.T) {
		v := NewView(src, NewFloorRenderer(), fixedPicker{id: "3", ok: true}, now)
		e, ok := v.Click(0, 0)
		require.True(t, ok)
		assert.Equal(t, "Mike Davis", e.Name)

		sel, ok := v.Selected()
		require.True(t, ok)
		assert.Equal(t, "3", sel.ID)
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		v := NewView(src, NewFloorRenderer(), fixedPicker{id: "1", ok: true}, now)
		_, ok := v.Click(0, 0)
		require.True(t, ok)

		v.picker = fixedPicker{id: "99", ok: true}
		_, ok = v.Click(0, 0)
		assert.False(t, ok)

		sel, ok := v.Selected()
		require.True(t, ok)
		assert.Equal(t, "1", sel.ID, "previous selection kept")
	})

	t.Run("miss is ignored", func(t *testing.T) {
		v := NewView(src, NewFloorRenderer(), fixedPicker{}, now)
		_, ok := v.Click(0, 0)
		assert.False(t, ok)
		_, ok = v.Selected()
		assert.False(t, ok)
	})

	t.Run("deselect", func(t *testing.T) {
		v := NewView(src, NewFloorRenderer(), fixedPicker{}, now)
		_, ok := v.Select("1")
		require.True(t, ok)
		v.Deselect()
		_, ok = v.Selected()
		assert.False(t, ok)
	})
}

func TestFloorRendererPick(t *testing.T) {
	r := NewFloorRenderer()
	f := BuildFrame(testSnapshot(), time.UnixMilli(0))

	id, ok := r.Pick(f, 2.1, 0.9)
	require.True(t, ok)
	assert.Equal(t, "1", id)

	id, ok = r.Pick(f, 1, -1)
	require.True(t, ok)
	assert.Equal(t, "3", id)

	_, ok = r.Pick(f, -3, -3)
	assert.False(t, ok)
}

func TestFloorRendererRender(t *testing.T) {
	r := NewFloorRenderer()
	f := BuildFrame(testSnapshot(), time.UnixMilli(0))

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, f))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, r.Rows+2)

	col, row := r.Cell(2, 1)
	assert.Equal(t, '1', []rune(lines[row])[col])
	col, row = r.Cell(1, -1)
	assert.Equal(t, '2', []rune(lines[row])[col])

	assert.Contains(t, lines[r.Rows], "Alex Chen")
	assert.Contains(t, lines[r.Rows], "80%")
	assert.Contains(t, lines[r.Rows+1], "Mike Davis")
}

func TestFloorCellRoundTrip(t *testing.T) {
	r := NewFloorRenderer()
	for col := 0; col < r.Cols; col++ {
		for row := 0; row < r.Rows; row++ {
			x, z := r.Point(col, row)
			c, rr := r.Cell(x, z)
			assert.Equal(t, col, c)
			assert.Equal(t, row, rr)
		}
	}
	c, rr := r.Cell(100, -100)
	assert.Equal(t, r.Cols-1, c)
	assert.Equal(t, 0, rr)
}

func TestViewRender(t *testing.T) {
	src := &staticSource{snapshot: testSnapshot()}
	v := NewView(src, NewFloorRenderer(), NewFloorRenderer(), func() time.Time { return time.UnixMilli(0) })

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf))
	assert.Contains(t, buf.String(), "Mike Davis")

	e, ok := v.Click(2, 1)
	require.True(t, ok)
	assert.Equal(t, "Alex Chen", e.Name)
}
