package memory

import (
	"fmt"
	"sync"

	"activitySignup/internal/models"
	"activitySignup/internal/storage"
)

// Storage keeps the activity roster in a mutex-guarded map. It is the
// default backend: activities come from the seed file at startup and live
// for the lifetime of the process.
type Storage struct {
	mu         sync.RWMutex
	activities map[string]models.Activity
}

func New(activities map[string]models.Activity) *Storage {
	s := &Storage{activities: make(map[string]models.Activity, len(activities))}
	for name, activity := range activities {
		s.activities[name] = copyActivity(activity)
	}
	return s
}

// GetAllActivities returns a deep copy of the roster so callers cannot
// mutate the store through the returned map.
func (s *Storage) GetAllActivities() (map[string]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Activity, len(s.activities))
	for name, activity := range s.activities {
		out[name] = copyActivity(activity)
	}

	return out, nil
}

func (s *Storage) SignUp(activity, email string) error {
	const op = "storage.memory.SignUp"

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activity]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrActivityNotFound)
	}

	if a.HasParticipant(email) {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadySignedUp)
	}

	if len(a.Participants) >= a.MaxParticipants {
		return fmt.Errorf("%s: %w", op, storage.ErrActivityFull)
	}

	a.Participants = append(a.Participants, email)
	s.activities[activity] = a

	return nil
}

func (s *Storage) Unregister(activity, email string) error {
	const op = "storage.memory.Unregister"

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activity]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrActivityNotFound)
	}

	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			s.activities[activity] = a
			return nil
		}
	}

	return fmt.Errorf("%s: %w", op, storage.ErrNotSignedUp)
}

func (s *Storage) Close() error {
	return nil
}

func copyActivity(a models.Activity) models.Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	a.Participants = participants
	return a
}
