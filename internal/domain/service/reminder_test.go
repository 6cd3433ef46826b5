package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/medtrack/medminder/internal/domain"
	"github.com/medtrack/medminder/internal/domain/entity"
)

// 2024-01-01 09:00 is a Monday morning.
var mondayNine = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func dueUser() *entity.User {
	return &entity.User{
		Username: "alice",
		Email:    "alice@example.com",
		Medications: []*entity.Medication{
			{Name: "Aspirin", Time: "09:00", Days: []int{domain.Monday}},
		},
	}
}

func Test_newReminderScheduler(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newReminderScheduler(m.mockDataManager, m.mockDispatcher, m.mockClock, time.Minute)

	require.NotNil(t, s)
	assert.Equal(t, time.Minute, s.interval)
	assert.NotNil(t, s.stopChan)
	assert.False(t, s.running)
}

func Test_reminderScheduler_Sweep(t *testing.T) {
	tests := []struct {
		name      string
		buildMock func(m allMocks)
	}{
		{
			name: "Should dispatch a due medication and persist the marker",
			buildMock: func(m allMocks) {
				user := dueUser()
				m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice"}, nil).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil).Times(1)
				m.mockDispatcher.EXPECT().DispatchReminder(user, user.Medications[0]).Return(true).Times(1)
				m.mockUserRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(saved *entity.User) error {
						require.Equal(t, "2024-01-01", saved.Medications[0].LastSentDate)
						return nil
					}).Times(1)
			},
		},
		{
			name: "Should not dispatch when medication already sent today",
			buildMock: func(m allMocks) {
				user := dueUser()
				user.Medications[0].LastSentDate = "2024-01-01"
				m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice"}, nil).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil).Times(1)
				// no dispatch, no save
			},
		},
		{
			name: "Should not dispatch before the scheduled time",
			buildMock: func(m allMocks) {
				user := dueUser()
				user.Medications[0].Time = "09:01"
				m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice"}, nil).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil).Times(1)
			},
		},
		{
			name: "Should not persist a marker when no channel accepted the message",
			buildMock: func(m allMocks) {
				user := dueUser()
				m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice"}, nil).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil).Times(1)
				m.mockDispatcher.EXPECT().DispatchReminder(user, user.Medications[0]).Return(false).Times(1)
				// no save: eligible again next tick
			},
		},
		{
			name: "Save failure must not abort the sweep",
			buildMock: func(m allMocks) {
				alice := dueUser()
				bob := &entity.User{
					Username: "bob",
					Email:    "bob@example.com",
					Medications: []*entity.Medication{
						{Name: "Ibuprofen", Time: "08:00", Days: []int{domain.Monday}},
					},
				}
				m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice", "bob"}, nil).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("alice").Return(alice, nil).Times(1)
				m.mockDispatcher.EXPECT().DispatchReminder(alice, alice.Medications[0]).Return(true).Times(1)
				m.mockUserRepo.EXPECT().Save(alice).Return(fmt.Errorf("disk full")).Times(1)

				// bob is still processed
				m.mockUserRepo.EXPECT().GetByUsername("bob").Return(bob, nil).Times(1)
				m.mockDispatcher.EXPECT().DispatchReminder(bob, bob.Medications[0]).Return(true).Times(1)
				m.mockUserRepo.EXPECT().Save(bob).Return(nil).Times(1)
			},
		},
		{
			name: "User load failure must not abort the sweep",
			buildMock: func(m allMocks) {
				bob := &entity.User{
					Username: "bob",
					Email:    "bob@example.com",
					Medications: []*entity.Medication{
						{Name: "Ibuprofen", Time: "08:00", Days: []int{domain.Monday}},
					},
				}
				m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice", "bob"}, nil).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("alice").Return(nil, fmt.Errorf("db error")).Times(1)
				m.mockUserRepo.EXPECT().GetByUsername("bob").Return(bob, nil).Times(1)
				m.mockDispatcher.EXPECT().DispatchReminder(bob, bob.Medications[0]).Return(true).Times(1)
				m.mockUserRepo.EXPECT().Save(bob).Return(nil).Times(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			m.mockClock.EXPECT().Now().Return(mondayNine).Times(1)
			tt.buildMock(m)

			s := newReminderScheduler(m.mockDataManager, m.mockDispatcher, m.mockClock, time.Minute)
			s.Sweep()
		})
	}
}

func Test_reminderScheduler_SweepIdempotentAcrossTicks(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	// The same user object is returned on both ticks, as if the second load
	// observed the marker persisted by the first.
	user := dueUser()

	m.mockClock.EXPECT().Now().Return(mondayNine).Times(2)
	m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice"}, nil).Times(2)
	m.mockUserRepo.EXPECT().GetByUsername("alice").Return(user, nil).Times(2)

	// Exactly one dispatch and one save across both sweeps.
	m.mockDispatcher.EXPECT().DispatchReminder(user, user.Medications[0]).Return(true).Times(1)
	m.mockUserRepo.EXPECT().Save(user).Return(nil).Times(1)

	s := newReminderScheduler(m.mockDataManager, m.mockDispatcher, m.mockClock, time.Minute)
	s.Sweep()
	s.Sweep()

	assert.Equal(t, "2024-01-01", user.Medications[0].LastSentDate)
}

func Test_reminderScheduler_RetriesAfterPersistenceFailure(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	m.mockClock.EXPECT().Now().Return(mondayNine).Times(2)
	m.mockUserRepo.EXPECT().ListUsernames().Return([]string{"alice"}, nil).Times(2)

	// Each tick reloads from the store; the failed save means the marker is
	// still unset on the second load.
	m.mockUserRepo.EXPECT().GetByUsername("alice").DoAndReturn(func(string) (*entity.User, error) {
		return dueUser(), nil
	}).Times(2)

	m.mockDispatcher.EXPECT().DispatchReminder(gomock.Any(), gomock.Any()).Return(true).Times(2)

	first := m.mockUserRepo.EXPECT().Save(gomock.Any()).Return(fmt.Errorf("store unreachable")).Times(1)
	m.mockUserRepo.EXPECT().Save(gomock.Any()).Return(nil).Times(1).After(first)

	s := newReminderScheduler(m.mockDataManager, m.mockDispatcher, m.mockClock, time.Minute)
	s.Sweep()
	s.Sweep()
}

func Test_reminderScheduler_StartStop(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	// Long interval: no tick fires before Stop.
	s := newReminderScheduler(m.mockDataManager, m.mockDispatcher, m.mockClock, time.Hour)

	s.Start()
	assert.True(t, s.running)
	s.Start() // idempotent

	s.Stop()
	assert.False(t, s.running)
	s.Stop() // idempotent
}
