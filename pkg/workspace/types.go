package workspace

import (
	"fmt"

	"github.com/google/uuid"
)

// FeedEntry is a single notification in a workspace feed.
// Entries are created once and only ever change by having Read flipped to true.
type FeedEntry struct {
	ID          string `json:"id"`            // UUIDv7 - unique across the feed's lifetime
	Title       string `json:"title"`         // Short headline
	Description string `json:"description"`   // One line of detail
	CreatedAtMs int64  `json:"created_at_ms"` // Unix timestamp in milliseconds
	Read        bool   `json:"read"`          // Set by "mark all read"
}

// Department groups employees in the office pulse view.
type Department string

const (
	DepartmentEngineering Department = "engineering"
	DepartmentMarketing   Department = "marketing"
	DepartmentSales       Department = "sales"
	DepartmentHR          Department = "hr"
)

// Mood is the simulated mood of an employee.
type Mood string

const (
	MoodHappy         Mood = "happy"
	MoodSleepy        Mood = "sleepy"
	MoodThinking      Mood = "thinking"
	MoodFiredUp       Mood = "fired-up"
	MoodCool          Mood = "cool"
	MoodCollaborative Mood = "collaborative"
)

// Moods lists every mood in declaration order.
var Moods = []Mood{MoodHappy, MoodSleepy, MoodThinking, MoodFiredUp, MoodCool, MoodCollaborative}

// Position is a point on the office floor. Y is up.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Employee is one simulated person on the roster.
// ID, Name, Department and Position are fixed for a session; the remaining
// fields are rewritten on every roster tick.
type Employee struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Department     Department `json:"department"`
	Position       Position   `json:"position"`
	Mood           Mood       `json:"mood"`
	ActivityLevel  float64    `json:"activity_level"`  // Always within [0,1]
	VerticalOffset float64    `json:"vertical_offset"` // Animation phase derived from wall-clock time
}

// RosterSnapshot is an immutable copy of the whole roster at one tick.
type RosterSnapshot struct {
	Employees   []Employee `json:"employees"`
	TickedAtMs  int64      `json:"ticked_at_ms"`  // 0 until the first tick
	Tick        uint64     `json:"tick"`          // Number of ticks applied
	StartedAtMs int64      `json:"started_at_ms"` // When the publishing roster was created
}

// Newer reports whether s should replace cur. Tick numbers restart with
// every roster, so a later StartedAtMs wins regardless of Tick.
func (s *RosterSnapshot) Newer(cur *RosterSnapshot) bool {
	if len(cur.Employees) == 0 {
		return true
	}
	if s.StartedAtMs != cur.StartedAtMs {
		return s.StartedAtMs > cur.StartedAtMs
	}
	return s.Tick >= cur.Tick
}

// FeedReadEvent announces that every mirrored feed entry was marked read.
// ThroughMs is the newest CreatedAtMs among those entries, 0 for an empty feed.
// Entries created after it were not seen by the reader and stay unread.
type FeedReadEvent struct {
	ReadAtMs  int64 `json:"read_at_ms"`
	ThroughMs int64 `json:"through_ms"`
	Changed   int   `json:"changed"`
}

// Validate checks if the FeedEntry has valid field values.
func (e *FeedEntry) Validate() error {
	if !isValidUUID(e.ID) {
		return fmt.Errorf("invalid feed entry ID: not a valid UUID")
	}

	if e.Title == "" {
		return fmt.Errorf("feed entry title cannot be empty")
	}

	if e.CreatedAtMs <= 0 {
		return fmt.Errorf("invalid created_at_ms: must be > 0, got %d", e.CreatedAtMs)
	}

	return nil
}

// Validate checks if the Department is a valid enum value.
func (d Department) Validate() error {
	switch d {
	case DepartmentEngineering, DepartmentMarketing, DepartmentSales, DepartmentHR:
		return nil
	default:
		return fmt.Errorf("unknown department: %q", d)
	}
}

// Validate checks if the Mood is a valid enum value.
func (m Mood) Validate() error {
	for _, known := range Moods {
		if m == known {
			return nil
		}
	}
	return fmt.Errorf("unknown mood: %q", m)
}

// Emoji returns the glyph used to display the mood.
func (m Mood) Emoji() string {
	switch m {
	case MoodHappy:
		return "😊"
	case MoodSleepy:
		return "😴"
	case MoodThinking:
		return "🤔"
	case MoodFiredUp:
		return "🔥"
	case MoodCool:
		return "😎"
	case MoodCollaborative:
		return "🤝"
	default:
		return "?"
	}
}

// Validate checks if the Employee has valid field values.
func (e *Employee) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("employee ID cannot be empty")
	}

	if e.Name == "" {
		return fmt.Errorf("employee %s: name cannot be empty", e.ID)
	}

	if err := e.Department.Validate(); err != nil {
		return fmt.Errorf("employee %s: %w", e.ID, err)
	}

	if err := e.Mood.Validate(); err != nil {
		return fmt.Errorf("employee %s: %w", e.ID, err)
	}

	if e.ActivityLevel < 0 || e.ActivityLevel > 1 {
		return fmt.Errorf("employee %s: activity level must be within [0,1], got %v", e.ID, e.ActivityLevel)
	}

	return nil
}

// Validate checks every employee and rejects duplicate IDs.
func (s *RosterSnapshot) Validate() error {
	seen := make(map[string]bool, len(s.Employees))
	for i := range s.Employees {
		if err := s.Employees[i].Validate(); err != nil {
			return err
		}
		if seen[s.Employees[i].ID] {
			return fmt.Errorf("duplicate employee ID: %s", s.Employees[i].ID)
		}
		seen[s.Employees[i].ID] = true
	}
	return nil
}

// Find returns the employee with the given ID.
func (s *RosterSnapshot) Find(id string) (Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// isValidUUID checks if a string is a valid UUID format.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
