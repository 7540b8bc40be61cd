package clubsettings

import (
	"errors"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	if err := d.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if d.Name != "Voley Club" || !d.TeamCreationEnabled || !d.MonthlyPaymentEnabled {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestValidateRejectsBadColors(t *testing.T) {
	for _, bad := range []string{"red", "#12", "#GGGGGG", "DC2626", "#DC26261"} {
		s := Defaults()
		s.Colors.Surface = bad
		if err := s.Validate(); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("color %q: expected ErrInvalidColor, got %v", bad, err)
		}
	}

	s := Defaults()
	s.Colors.Primary = "#fff"
	if err := s.Validate(); err != nil {
		t.Fatalf("short hex should be accepted: %v", err)
	}

	s.Name = "  "
	if err := s.Validate(); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}
