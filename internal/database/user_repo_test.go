package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrack/medminder/internal/domain"
	"github.com/medtrack/medminder/internal/domain/contract"
	"github.com/medtrack/medminder/internal/domain/entity"
)

func testUser() *entity.User {
	return &entity.User{
		Username:    "alice",
		Email:       "alice@example.com",
		PhoneNumber: "5551234567",
		Carrier:     "Verizon",
		Medications: []*entity.Medication{
			{
				Name:   "Aspirin",
				Time:   "09:00",
				Days:   []int{domain.Monday, domain.Wednesday, domain.Friday},
				Dosage: "100mg",
				Notes:  "after breakfast",
			},
			{
				Name: "Vitamin D",
				Time: "21:30",
				Days: []int{domain.Monday},
			},
		},
	}
}

func TestUserRepository_SaveAndGet(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepository(db.conn)

	err := repo.Save(testUser())
	require.NoError(t, err, "Failed to save user")

	found, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, found, "Expected to find user")

	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, "5551234567", found.PhoneNumber)
	assert.Equal(t, "Verizon", found.Carrier)

	require.Len(t, found.Medications, 2)
	assert.Equal(t, "Aspirin", found.Medications[0].Name)
	assert.Equal(t, []int{domain.Monday, domain.Wednesday, domain.Friday}, found.Medications[0].Days)
	assert.Equal(t, "100mg", found.Medications[0].Dosage)
	assert.Equal(t, "after breakfast", found.Medications[0].Notes)
	assert.Empty(t, found.Medications[0].LastSentDate, "last-sent marker should round-trip as empty")
	assert.Equal(t, "Vitamin D", found.Medications[1].Name)

	// Not found
	missing, err := repo.GetByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_SaveReplacesMedications(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepository(db.conn)

	user := testUser()
	require.NoError(t, repo.Save(user))

	// Mark one sent, drop the other, add a new one at the end.
	user.Medications[0].LastSentDate = "2024-01-01"
	user.RemoveMedication("Vitamin D")
	user.AddMedication(&entity.Medication{Name: "Ibuprofen", Time: "12:00", Days: []int{domain.Tuesday}})

	require.NoError(t, repo.Save(user))

	found, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, found)

	require.Len(t, found.Medications, 2)
	assert.Equal(t, "Aspirin", found.Medications[0].Name)
	assert.Equal(t, "2024-01-01", found.Medications[0].LastSentDate)
	assert.Equal(t, "Ibuprofen", found.Medications[1].Name, "insertion order must be preserved")
}

func TestUserRepository_ListUsernames(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepository(db.conn)

	usernames, err := repo.ListUsernames()
	require.NoError(t, err)
	assert.Empty(t, usernames)

	require.NoError(t, repo.Save(&entity.User{Username: "bob", Email: "bob@example.com"}))
	require.NoError(t, repo.Save(&entity.User{Username: "alice", Email: "alice@example.com"}))

	usernames, err = repo.ListUsernames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, usernames)
}

func TestUserRepository_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newUserRepository(db.conn)

	require.NoError(t, repo.Save(testUser()))
	require.NoError(t, repo.Delete("alice"))

	found, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Nil(t, found)

	// medications must be gone too (cascade)
	var count int
	err = db.conn.QueryRow(`SELECT COUNT(*) FROM medications WHERE username = ?`, "alice").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "Expected cascade delete of medications")
}

func TestInstance_WithTransaction(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)

	// Commit path
	err := dm.WithTransaction(context.Background(), func(tx contract.DataManager) error {
		return tx.User().Save(testUser())
	})
	require.NoError(t, err)

	found, err := dm.User().GetByUsername("alice")
	require.NoError(t, err)
	assert.NotNil(t, found)

	// Rollback path: the save inside the failed transaction must not stick
	err = dm.WithTransaction(context.Background(), func(tx contract.DataManager) error {
		if err := tx.User().Save(&entity.User{Username: "carol", Email: "carol@example.com"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	found, err = dm.User().GetByUsername("carol")
	require.NoError(t, err)
	assert.Nil(t, found, "Rolled back user should not exist")
}
