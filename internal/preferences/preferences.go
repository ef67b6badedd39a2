// Package preferences holds the user's display and notification settings as
// one immutable snapshot. A change replaces the whole snapshot and then
// writes it to storage once.
package preferences

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
)

// Key is the storage key holding the serialized preferences record.
const Key = "preferences"

// AccentColor is the highlight color applied across the UI.
type AccentColor string

const (
	AccentCyan   AccentColor = "cyan"
	AccentPurple AccentColor = "purple"
	AccentPink   AccentColor = "pink"
	AccentGreen  AccentColor = "green"
	AccentOrange AccentColor = "orange"
)

// AccentColors lists the selectable accents.
var AccentColors = []AccentColor{AccentCyan, AccentPurple, AccentPink, AccentGreen, AccentOrange}

var accentHex = map[AccentColor]string{
	AccentCyan:   "#06b6d4",
	AccentPurple: "#8b5cf6",
	AccentPink:   "#ec4899",
	AccentGreen:  "#10b981",
	AccentOrange: "#f97316",
}

// Hex returns the accent as a #rrggbb string, or "" if unknown.
func (a AccentColor) Hex() string {
	return accentHex[a]
}

// Validate checks if the AccentColor is a valid enum value.
func (a AccentColor) Validate() error {
	if _, ok := accentHex[a]; !ok {
		return fmt.Errorf("unknown accent color: %q (expected one of %s)", a, joinEnum(AccentColors))
	}
	return nil
}

// LandingPage is the view shown at startup.
type LandingPage string

const (
	LandingDashboard LandingPage = "dashboard"
	LandingFocus     LandingPage = "focus"
	LandingPulse     LandingPage = "pulse"
	LandingAssistant LandingPage = "assistant"
)

// LandingPages lists the selectable landing pages.
var LandingPages = []LandingPage{LandingDashboard, LandingFocus, LandingPulse, LandingAssistant}

// Validate checks if the LandingPage is a valid enum value.
func (l LandingPage) Validate() error {
	for _, known := range LandingPages {
		if l == known {
			return nil
		}
	}
	return fmt.Errorf("unknown landing page: %q (expected one of %s)", l, joinEnum(LandingPages))
}

// Profile identifies the user.
type Profile struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Notifications toggles notification channels.
type Notifications struct {
	Desktop bool `json:"desktop"`
	Sound   bool `json:"sound"`
}

// Preferences is a complete settings snapshot. Treat values as immutable and
// go through Store.Update to change them.
type Preferences struct {
	DarkMode      bool          `json:"dark_mode"`
	DyslexicFont  bool          `json:"dyslexic_font"`
	AccentColor   AccentColor   `json:"accent_color"`
	Profile       Profile       `json:"profile"`
	LandingPage   LandingPage   `json:"landing_page"`
	Notifications Notifications `json:"notifications"`
}

// Default returns the settings used when nothing valid is stored.
func Default() Preferences {
	return Preferences{
		DarkMode:      true,
		DyslexicFont:  false,
		AccentColor:   AccentCyan,
		Profile:       Profile{DisplayName: "Axero User"},
		LandingPage:   LandingDashboard,
		Notifications: Notifications{Desktop: true, Sound: false},
	}
}

// Validate checks enum fields and the profile.
func (p Preferences) Validate() error {
	if err := p.AccentColor.Validate(); err != nil {
		return err
	}
	if err := p.LandingPage.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Profile.DisplayName) == "" {
		return fmt.Errorf("profile display name cannot be empty")
	}
	if p.Profile.Email != "" {
		if _, err := mail.ParseAddress(p.Profile.Email); err != nil {
			return fmt.Errorf("invalid profile email %q: %w", p.Profile.Email, err)
		}
	}
	return nil
}

// Decode parses a stored record. Fields missing from raw keep their default.
// A record that does not parse or fails Validate yields Default() and false.
func Decode(raw string) (Preferences, bool) {
	p := Default()
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Default(), false
	}
	if err := p.Validate(); err != nil {
		return Default(), false
	}
	return p, true
}

// Encode serializes p for storage.
func Encode(p Preferences) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode preferences: %w", err)
	}
	return string(data), nil
}

// Fields lists the names accepted by Apply.
var Fields = []string{
	"dark_mode",
	"dyslexic_font",
	"accent_color",
	"profile.display_name",
	"profile.email",
	"landing_page",
	"notifications.desktop",
	"notifications.sound",
}

// Apply returns a copy of p with one field set from its string form.
// The result is validated.
func Apply(p Preferences, field, value string) (Preferences, error) {
	var err error
	switch field {
	case "dark_mode":
		p.DarkMode, err = parseBool(field, value)
	case "dyslexic_font":
		p.DyslexicFont, err = parseBool(field, value)
	case "accent_color":
		p.AccentColor = AccentColor(strings.ToLower(value))
	case "profile.display_name":
		p.Profile.DisplayName = value
	case "profile.email":
		p.Profile.Email = value
	case "landing_page":
		p.LandingPage = LandingPage(strings.ToLower(value))
	case "notifications.desktop":
		p.Notifications.Desktop, err = parseBool(field, value)
	case "notifications.sound":
		p.Notifications.Sound, err = parseBool(field, value)
	default:
		return p, fmt.Errorf("unknown preference %q (expected one of %s)", field, strings.Join(Fields, ", "))
	}
	if err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func parseBool(field, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", field, value)
	}
	return b, nil
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
