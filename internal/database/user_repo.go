package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/medtrack/medminder/internal/domain/contract"
	"github.com/medtrack/medminder/internal/domain/entity"
)

type userRepository struct {
	db dbConn
}

func newUserRepository(db dbConn) contract.UserRepo {
	return &userRepository{db: db}
}

func (r *userRepository) ListUsernames() ([]string, error) {
	rows, err := r.db.Query(`SELECT username FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		usernames = append(usernames, username)
	}

	return usernames, rows.Err()
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	user := &entity.User{}
	query := `
		SELECT username, email, phone_number, carrier, created_at, updated_at
		FROM users
		WHERE username = ?
	`

	err := r.db.QueryRow(query, username).Scan(
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.Carrier,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	medications, err := r.medicationsByUsername(username)
	if err != nil {
		return nil, err
	}
	user.Medications = medications

	return user, nil
}

func (r *userRepository) medicationsByUsername(username string) ([]*entity.Medication, error) {
	query := `
		SELECT name, time, days, dosage, notes, last_sent_date
		FROM medications
		WHERE username = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	defer rows.Close()

	var medications []*entity.Medication
	for rows.Next() {
		med := &entity.Medication{}
		var daysJSON string
		var lastSentDate sql.NullString
		err := rows.Scan(
			&med.Name,
			&med.Time,
			&daysJSON,
			&med.Dosage,
			&med.Notes,
			&lastSentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}

		if err := json.Unmarshal([]byte(daysJSON), &med.Days); err != nil {
			return nil, fmt.Errorf("failed to unmarshal days: %w", err)
		}
		med.LastSentDate = lastSentDate.String

		medications = append(medications, med)
	}

	return medications, rows.Err()
}

// Save upserts the user row and replaces the stored medication set with the
// in-memory one, keeping insertion order via the position column. Callers
// run it inside DataManager.WithTransaction so the replace is atomic.
func (r *userRepository) Save(user *entity.User) error {
	query := `
		INSERT INTO users (username, email, phone_number, carrier)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			email = excluded.email,
			phone_number = excluded.phone_number,
			carrier = excluded.carrier,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, user.Username, user.Email, user.PhoneNumber, user.Carrier); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if _, err := r.db.Exec(`DELETE FROM medications WHERE username = ?`, user.Username); err != nil {
		return fmt.Errorf("failed to clear medications: %w", err)
	}

	insert := `
		INSERT INTO medications (username, name, time, days, dosage, notes, last_sent_date, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for position, med := range user.Medications {
		daysJSON, err := json.Marshal(med.Days)
		if err != nil {
			return fmt.Errorf("failed to marshal days: %w", err)
		}

		var lastSentDate sql.NullString
		if med.LastSentDate != "" {
			lastSentDate = sql.NullString{String: med.LastSentDate, Valid: true}
		}

		_, err = r.db.Exec(insert,
			user.Username,
			med.Name,
			med.Time,
			string(daysJSON),
			med.Dosage,
			med.Notes,
			lastSentDate,
			position,
		)
		if err != nil {
			return fmt.Errorf("failed to save medication %q: %w", med.Name, err)
		}
	}

	return nil
}

func (r *userRepository) Delete(username string) error {
	// medications go with the user via ON DELETE CASCADE
	_, err := r.db.Exec(`DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
