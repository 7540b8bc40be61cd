package clubsettings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// SingletonID is the fixed key of the one settings row.
const SingletonID = 1

var ErrInvalidColor = errors.New("invalid hex color")

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Palette is the club branding colour set.
type Palette struct {
	Primary       string
	Secondary     string
	Tertiary      string
	Background    string
	Surface       string
	TextPrimary   string
	TextSecondary string
}

// Settings is the process-wide club configuration.
type Settings struct {
	Name                  string
	LogoURL               string
	Colors                Palette
	TeamCreationEnabled   bool
	MonthlyPaymentEnabled bool
}

// Defaults are written the first time settings are read.
func Defaults() Settings {
	return Settings{
		Name:    "Voley Club",
		LogoURL: "/logo-default.svg",
		Colors: Palette{
			Primary:       "#DC2626",
			Secondary:     "#F9FAFB",
			Tertiary:      "#FBBF24",
			Background:    "#000000",
			Surface:       "#1F2937",
			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
		},
		TeamCreationEnabled:   true,
		MonthlyPaymentEnabled: true,
	}
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("club name is required")
	}
	return s.Colors.Validate()
}

func (p Palette) Validate() error {
	for _, c := range []struct {
		field string
		value string
	}{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"tertiary", p.Tertiary},
		{"background", p.Background},
		{"surface", p.Surface},
		{"textPrimary", p.TextPrimary},
		{"textSecondary", p.TextSecondary},
	} {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidColor, c.field, c.value)
		}
	}
	return nil
}
