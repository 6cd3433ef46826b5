package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/medtrack/medminder/internal/domain"
	"github.com/medtrack/medminder/internal/domain/contract"
	"github.com/medtrack/medminder/internal/domain/entity"
)

// medicationService implements the data-entry surface. All validation lives
// here, before anything reaches the store: the schedulers assume stored data
// is well-formed.
type medicationService struct {
	dm contract.DataManager
}

func newMedicationService(dm contract.DataManager) *medicationService {
	return &medicationService{dm: dm}
}

func (s *medicationService) AddUser(ctx context.Context, username, email, phoneNumber, carrier string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email is required")
	}

	existing, err := s.dm.User().GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q is already taken", username)
	}

	user := &entity.User{
		Username:    username,
		Email:       strings.TrimSpace(email),
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Carrier:     strings.TrimSpace(carrier),
	}

	err = s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		return dm.User().Save(user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *medicationService) RemoveUser(ctx context.Context, username string) error {
	user, err := s.dm.User().GetByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %q does not exist", username)
	}

	return s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		return dm.User().Delete(username)
	})
}

func (s *medicationService) ListUsers() ([]string, error) {
	return s.dm.User().ListUsernames()
}

func (s *medicationService) GetUser(username string) (*entity.User, error) {
	return s.dm.User().GetByUsername(username)
}

func (s *medicationService) AddMedication(ctx context.Context, username string, input contract.MedicationInput) (*entity.Medication, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	if err := domain.ValidateTime(input.Time); err != nil {
		return nil, err
	}
	days, err := domain.ParseDays(input.Days)
	if err != nil {
		return nil, err
	}

	user, err := s.dm.User().GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q does not exist", username)
	}

	med := &entity.Medication{
		Name:   name,
		Time:   input.Time,
		Days:   days,
		Dosage: strings.TrimSpace(input.Dosage),
		Notes:  strings.TrimSpace(input.Notes),
	}

	if !user.AddMedication(med) {
		return nil, fmt.Errorf("medication %q already exists for user %q", name, username)
	}

	err = s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		return dm.User().Save(user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save medication: %w", err)
	}

	return med, nil
}

func (s *medicationService) RemoveMedication(ctx context.Context, username, medicationName string) error {
	user, err := s.dm.User().GetByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %q does not exist", username)
	}

	if !user.RemoveMedication(medicationName) {
		return fmt.Errorf("medication %q not found for user %q", medicationName, username)
	}

	return s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
		return dm.User().Save(user)
	})
}

// UpcomingToday lists the medications scheduled for today whose time has not
// been reached yet, in insertion order.
func (s *medicationService) UpcomingToday(username string, now time.Time) ([]*entity.Medication, error) {
	user, err := s.dm.User().GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q does not exist", username)
	}

	weekday := domain.ISOWeekday(now)
	nowMinutes := now.Hour()*60 + now.Minute()

	var upcoming []*entity.Medication
	for _, med := range user.Medications {
		if !med.ScheduledOn(weekday) {
			continue
		}
		medTime, err := time.Parse(domain.TimeLayout, med.Time)
		if err != nil {
			continue
		}
		if medTime.Hour()*60+medTime.Minute() >= nowMinutes {
			upcoming = append(upcoming, med)
		}
	}

	return upcoming, nil
}

// Export writes every user keyed by username as an indented JSON document.
func (s *medicationService) Export(w io.Writer) error {
	usernames, err := s.dm.User().ListUsernames()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	data := make(map[string]*entity.User, len(usernames))
	for _, username := range usernames {
		user, err := s.dm.User().GetByUsername(username)
		if err != nil {
			return fmt.Errorf("failed to load user %q: %w", username, err)
		}
		if user == nil {
			continue
		}
		data[username] = user
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Import restores a backup produced by Export, upserting user by user.
func (s *medicationService) Import(ctx context.Context, r io.Reader) error {
	var data map[string]*entity.User
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	for username, user := range data {
		if user == nil {
			continue
		}
		user.Username = username
		err := s.dm.WithTransaction(ctx, func(dm contract.DataManager) error {
			return dm.User().Save(user)
		})
		if err != nil {
			return fmt.Errorf("failed to import user %q: %w", username, err)
		}
	}

	return nil
}
