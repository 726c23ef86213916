package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"activitySignup/internal/config"
	"activitySignup/internal/models"
	"activitySignup/internal/storage"
)

// Storage is the optional persistent backend. It exposes the same surface
// and sentinel errors as the memory backend, so handlers never know which
// one they talk to.
type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.createTables(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) createTables() error {
	schema := `
		CREATE TABLE IF NOT EXISTS activities (
			name             TEXT PRIMARY KEY,
			description      TEXT NOT NULL,
			schedule         TEXT NOT NULL,
			max_participants INT  NOT NULL
		);

		CREATE TABLE IF NOT EXISTS participants (
			activity_name TEXT NOT NULL REFERENCES activities(name),
			email         TEXT NOT NULL,
			signed_up_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (activity_name, email)
		);`

	if _, err := s.DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// SeedActivities inserts the configured roster. Existing rows win, so a
// restart never resets participants signed up since the last deploy.
func (s *Storage) SeedActivities(activities map[string]models.Activity) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	activityQuery := `
		INSERT INTO activities (name, description, schedule, max_participants)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	participantQuery := `
		INSERT INTO participants (activity_name, email)
		VALUES ($1, $2)
		ON CONFLICT (activity_name, email) DO NOTHING`

	for name, activity := range activities {
		if _, err = tx.Exec(activityQuery, name, activity.Description, activity.Schedule, activity.MaxParticipants); err != nil {
			return fmt.Errorf("failed to seed activity: %w", err)
		}

		for _, email := range activity.Participants {
			if _, err = tx.Exec(participantQuery, name, email); err != nil {
				return fmt.Errorf("failed to seed participant: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (s *Storage) GetAllActivities() (map[string]models.Activity, error) {
	query := `
		SELECT name, description, schedule, max_participants
		FROM activities
		ORDER BY name ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	activities := make(map[string]models.Activity)
	names := make([]string, 0)

	for rows.Next() {
		var name string
		var activity models.Activity
		if err = rows.Scan(&name, &activity.Description, &activity.Schedule, &activity.MaxParticipants); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Participants = []string{}
		activities[name] = activity
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	participantQuery := `
		SELECT email
		FROM participants
		WHERE activity_name = $1
		ORDER BY signed_up_at ASC`

	for _, name := range names {
		pRows, err := s.DB.Query(participantQuery, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get participants: %w", err)
		}

		activity := activities[name]
		for pRows.Next() {
			var email string
			if err = pRows.Scan(&email); err != nil {
				pRows.Close()
				return nil, fmt.Errorf("failed to scan participant: %w", err)
			}
			activity.Participants = append(activity.Participants, email)
		}

		if err = pRows.Err(); err != nil {
			pRows.Close()
			return nil, fmt.Errorf("error iterating participants: %w", err)
		}
		pRows.Close()

		activities[name] = activity
	}

	return activities, nil
}

func (s *Storage) SignUp(activity, email string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxParticipants, signedUp int
	countQuery := `
		SELECT a.max_participants, COUNT(p.email)
		FROM activities a
		LEFT JOIN participants p ON a.name = p.activity_name
		WHERE a.name = $1
		GROUP BY a.name, a.max_participants`

	err = tx.QueryRow(countQuery, activity).Scan(&maxParticipants, &signedUp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to sign up: %w", storage.ErrActivityNotFound)
		}
		return fmt.Errorf("failed to get activity capacity: %w", err)
	}

	var alreadySignedUp bool
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM participants
			WHERE activity_name = $1 AND email = $2
		)`

	err = tx.QueryRow(checkQuery, activity, email).Scan(&alreadySignedUp)
	if err != nil {
		return fmt.Errorf("failed to check existing signup: %w", err)
	}

	if alreadySignedUp {
		return fmt.Errorf("failed to sign up: %w", storage.ErrAlreadySignedUp)
	}

	if signedUp >= maxParticipants {
		return fmt.Errorf("failed to sign up: %w", storage.ErrActivityFull)
	}

	insertQuery := `
		INSERT INTO participants (activity_name, email)
		VALUES ($1, $2)`

	if _, err = tx.Exec(insertQuery, activity, email); err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return tx.Commit()
}

func (s *Storage) Unregister(activity, email string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	activityQuery := `SELECT EXISTS(SELECT 1 FROM activities WHERE name = $1)`

	if err = tx.QueryRow(activityQuery, activity).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check activity: %w", err)
	}

	if !exists {
		return fmt.Errorf("failed to unregister: %w", storage.ErrActivityNotFound)
	}

	deleteQuery := `
		DELETE FROM participants
		WHERE activity_name = $1 AND email = $2`

	result, err := tx.Exec(deleteQuery, activity, email)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed participant: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("failed to unregister: %w", storage.ErrNotSignedUp)
	}

	return tx.Commit()
}
