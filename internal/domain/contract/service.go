package contract

import (
	"context"
	"io"
	"time"

	"github.com/medtrack/medminder/internal/domain/entity"
)

// MedicationInput is the unvalidated form of a medication as submitted by
// the data-entry surface. Days are weekday names; validation happens in the
// service before anything reaches the store.
type MedicationInput struct {
	Name   string   `json:"name"`
	Time   string   `json:"time"`
	Days   []string `json:"days"`
	Dosage string   `json:"dosage,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// MedicationService is the mutation and query surface exposed to the
// data-entry front end. Every mutation goes through the same save path the
// schedulers use.
type MedicationService interface {
	AddUser(ctx context.Context, username, email, phoneNumber, carrier string) (*entity.User, error)
	RemoveUser(ctx context.Context, username string) error
	ListUsers() ([]string, error)
	GetUser(username string) (*entity.User, error)

	AddMedication(ctx context.Context, username string, input MedicationInput) (*entity.Medication, error)
	RemoveMedication(ctx context.Context, username, medicationName string) error

	// UpcomingToday lists medications scheduled today whose time has not
	// yet been reached.
	UpcomingToday(username string, now time.Time) ([]*entity.Medication, error)

	// Export writes a JSON backup of every user; Import restores one,
	// upserting user by user.
	Export(w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
}
