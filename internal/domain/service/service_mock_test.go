package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/medtrack/medminder/internal/domain/contract"
	"github.com/medtrack/medminder/mocks"
)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockUserRepo    *mocks.MockUserRepo
	mockDispatcher  *mocks.MockReminderDispatcher
	mockClock       *mocks.MockClock
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	userRepo := mocks.NewMockUserRepo(ctrl)
	dm.EXPECT().User().Return(userRepo).AnyTimes()

	// Route transactions back to the same mocks so Save expectations apply.
	dm.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(contract.DataManager) error) error {
			return fn(dm)
		}).AnyTimes()

	dispatcher := mocks.NewMockReminderDispatcher(ctrl)
	clock := mocks.NewMockClock(ctrl)

	m = allMocks{
		mockDataManager: dm,
		mockUserRepo:    userRepo,
		mockDispatcher:  dispatcher,
		mockClock:       clock,
	}

	// validate service creation
	medicationService := newMedicationService(dm)
	require.NotNil(t, medicationService)

	return
}
