package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitySignup/internal/models"
	"activitySignup/internal/storage"
)

func seed() map[string]models.Activity {
	return map[string]models.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and conditioning",
			Schedule:        "Mon, Wed, Fri, 2:00 PM - 3:00 PM",
			MaxParticipants: 2,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Art Club": {
			Description:     "Painting and drawing",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{},
		},
	}
}

func TestGetAllActivities(t *testing.T) {
	t.Parallel()

	s := New(seed())

	activities, err := s.GetAllActivities()
	require.NoError(t, err)

	require.Len(t, activities, 3)
	assert.Equal(t, 12, activities["Chess Club"].MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, activities["Chess Club"].Participants)
	assert.Empty(t, activities["Art Club"].Participants)
}

func TestGetAllActivitiesReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New(seed())

	activities, err := s.GetAllActivities()
	require.NoError(t, err)

	activities["Chess Club"].Participants[0] = "mutated@mergington.edu"
	delete(activities, "Art Club")

	again, err := s.GetAllActivities()
	require.NoError(t, err)

	assert.Equal(t, "michael@mergington.edu", again["Chess Club"].Participants[0])
	assert.Contains(t, again, "Art Club")
}

func TestNewCopiesSeed(t *testing.T) {
	t.Parallel()

	data := seed()
	s := New(data)

	data["Chess Club"].Participants[0] = "mutated@mergington.edu"

	activities, err := s.GetAllActivities()
	require.NoError(t, err)
	assert.Equal(t, "michael@mergington.edu", activities["Chess Club"].Participants[0])
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	s := New(seed())

	require.NoError(t, s.SignUp("Chess Club", "emma@mergington.edu"))

	activities, err := s.GetAllActivities()
	require.NoError(t, err)

	participants := activities["Chess Club"].Participants
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "emma@mergington.edu"}, participants,
		"new participant should be appended at the end")

	count := 0
	for _, p := range participants {
		if p == "emma@mergington.edu" {
			count++
		}
	}
	assert.Equal(t, 1, count, "email should appear exactly once")
}

func TestSignUpErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		activity string
		email    string
		wantErr  error
	}{
		{
			name:     "unknown activity",
			activity: "Quidditch",
			email:    "emma@mergington.edu",
			wantErr:  storage.ErrActivityNotFound,
		},
		{
			name:     "duplicate signup",
			activity: "Chess Club",
			email:    "michael@mergington.edu",
			wantErr:  storage.ErrAlreadySignedUp,
		},
		{
			name:     "activity at capacity",
			activity: "Gym Class",
			email:    "emma@mergington.edu",
			wantErr:  storage.ErrActivityFull,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := New(seed())

			err := s.SignUp(tc.activity, tc.email)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)

			activities, getErr := s.GetAllActivities()
			require.NoError(t, getErr)
			assert.Equal(t, seed(), activities, "failed signup must not change the roster")
		})
	}
}

func TestDuplicateCheckedBeforeCapacity(t *testing.T) {
	t.Parallel()

	s := New(seed())

	// Gym Class is full and john is already on it; the duplicate error wins.
	err := s.SignUp("Gym Class", "john@mergington.edu")
	assert.ErrorIs(t, err, storage.ErrAlreadySignedUp)
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	s := New(seed())

	require.NoError(t, s.Unregister("Chess Club", "michael@mergington.edu"))

	activities, err := s.GetAllActivities()
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu"}, activities["Chess Club"].Participants)
}

func TestUnregisterErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		activity string
		email    string
		wantErr  error
	}{
		{
			name:     "unknown activity",
			activity: "Quidditch",
			email:    "michael@mergington.edu",
			wantErr:  storage.ErrActivityNotFound,
		},
		{
			name:     "not a participant",
			activity: "Chess Club",
			email:    "nobody@mergington.edu",
			wantErr:  storage.ErrNotSignedUp,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := New(seed())

			err := s.Unregister(tc.activity, tc.email)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSignUpUnregisterRoundTrip(t *testing.T) {
	t.Parallel()

	s := New(seed())

	require.NoError(t, s.SignUp("Art Club", "emma@mergington.edu"))
	require.NoError(t, s.Unregister("Art Club", "emma@mergington.edu"))

	activities, err := s.GetAllActivities()
	require.NoError(t, err)
	assert.Empty(t, activities["Art Club"].Participants)
}

func TestSignUpFreesNoCapacityUntilUnregister(t *testing.T) {
	t.Parallel()

	s := New(seed())

	err := s.SignUp("Gym Class", "emma@mergington.edu")
	require.ErrorIs(t, err, storage.ErrActivityFull)

	require.NoError(t, s.Unregister("Gym Class", "john@mergington.edu"))
	require.NoError(t, s.SignUp("Gym Class", "emma@mergington.edu"))

	activities, getErr := s.GetAllActivities()
	require.NoError(t, getErr)
	assert.Equal(t, []string{"olivia@mergington.edu", "emma@mergington.edu"}, activities["Gym Class"].Participants)
}

func TestClose(t *testing.T) {
	t.Parallel()

	assert.NoError(t, New(nil).Close())
}
