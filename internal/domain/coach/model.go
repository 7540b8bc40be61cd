package coach

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateDocument = errors.New("coach document already registered")

// Coach is a staff member who may lead teams and log in with their document.
type Coach struct {
	ID        string
	FirstName string
	LastName  string
	Document  string
	AvatarURL string
}

func (c Coach) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("coach id is required")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("coach first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("coach last name is required")
	}
	if strings.TrimSpace(c.Document) == "" {
		return fmt.Errorf("coach document is required")
	}
	return nil
}

func (c Coach) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
