package contract

import (
	"context"

	"github.com/medtrack/medminder/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	User() UserRepo
}

// UserRepo defines the contract for the medication store. It is the single
// persistence boundary shared by the schedulers and the data-entry surface.
type UserRepo interface {
	// ListUsernames returns all stored usernames.
	ListUsernames() ([]string, error)

	// GetByUsername loads a user with medications in insertion order.
	// Returns nil when the user does not exist.
	GetByUsername(username string) (*entity.User, error)

	// Save upserts the user and replaces their stored medication set.
	Save(user *entity.User) error

	// Delete removes the user and all of their medications.
	Delete(username string) error
}
