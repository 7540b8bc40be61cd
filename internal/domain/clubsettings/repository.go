package clubsettings

import "context"

// Repository persists the settings singleton.
type Repository interface {
	// GetOrCreate returns the stored settings, atomically inserting defaults
	// first when none exist.
	GetOrCreate(ctx context.Context, defaults Settings) (Settings, error)
	// Save replaces every editable field of the singleton.
	Save(ctx context.Context, s Settings) (Settings, error)
}
