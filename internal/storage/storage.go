package storage

import (
	"errors"

	"activitySignup/internal/models"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student already signed up for this activity")
	ErrActivityFull     = errors.New("activity is full")
	ErrNotSignedUp      = errors.New("student not signed up for this activity")
)

// Storage is the roster backend contract shared by the memory and postgres
// implementations. All of them wrap the sentinel errors above, so callers
// branch with errors.Is.
type Storage interface {
	GetAllActivities() (map[string]models.Activity, error)
	SignUp(activity, email string) error
	Unregister(activity, email string) error
	Close() error
}
