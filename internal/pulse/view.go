package pulse

import (
	"io"
	"sync"
	"time"

	"github.com/dyluth/axero/pkg/workspace"
)

// Renderer draws a frame.
type Renderer interface {
	Render(w io.Writer, f Frame) error
}

// Picker maps a pointer position to the entity under it. x and y are in the
// renderer's own coordinate space.
type Picker interface {
	Pick(f Frame, x, y float64) (id string, ok bool)
}

// Source supplies the latest roster snapshot.
type Source interface {
	Snapshot() workspace.RosterSnapshot
}

// View ties a roster source to a renderer and tracks the selected employee.
type View struct {
	source   Source
	renderer Renderer
	picker   Picker
	now      func() time.Time

	mu       sync.Mutex
	selected string
}

// NewView creates a view. now is typically a clock's Now.
func NewView(source Source, renderer Renderer, picker Picker, now func() time.Time) *View {
	return &View{source: source, renderer: renderer, picker: picker, now: now}
}

// Frame builds the frame for the current time.
func (v *View) Frame() Frame {
	return BuildFrame(v.source.Snapshot(), v.now())
}

// Render draws the current frame.
func (v *View) Render(w io.Writer) error {
	return v.renderer.Render(w, v.Frame())
}

// Click selects the employee under (x, y). Misses and ids that are not on
// the roster leave the selection unchanged.
func (v *View) Click(x, y float64) (workspace.Employee, bool) {
	id, ok := v.picker.Pick(v.Frame(), x, y)
	if !ok {
		return workspace.Employee{}, false
	}
	return v.Select(id)
}

// Select selects the employee with id if it is on the roster.
func (v *View) Select(id string) (workspace.Employee, bool) {
	snapshot := v.source.Snapshot()
	e, ok := snapshot.Find(id)
	if !ok {
		return workspace.Employee{}, false
	}
	v.mu.Lock()
	v.selected = id
	v.mu.Unlock()
	return e, true
}

// Deselect clears the selection.
func (v *View) Deselect() {
	v.mu.Lock()
	v.selected = ""
	v.mu.Unlock()
}

// Selected returns the selected employee with its latest values.
func (v *View) Selected() (workspace.Employee, bool) {
	v.mu.Lock()
	id := v.selected
	v.mu.Unlock()
	if id == "" {
		return workspace.Employee{}, false
	}
	snapshot := v.source.Snapshot()
	return snapshot.Find(id)
}
