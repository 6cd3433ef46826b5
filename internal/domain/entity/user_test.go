package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Medications(t *testing.T) {
	user := &User{Username: "alice", Email: "alice@example.com"}

	require.True(t, user.AddMedication(&Medication{Name: "Aspirin", Time: "09:00", Days: []int{1}}))
	require.True(t, user.AddMedication(&Medication{Name: "Vitamin D", Time: "21:00", Days: []int{1}}))

	assert.False(t, user.AddMedication(&Medication{Name: "Aspirin", Time: "12:00", Days: []int{2}}),
		"duplicate names must be rejected")
	require.Len(t, user.Medications, 2)

	assert.NotNil(t, user.Medication("Aspirin"))
	assert.Nil(t, user.Medication("Nope"))

	assert.True(t, user.RemoveMedication("Aspirin"))
	assert.False(t, user.RemoveMedication("Aspirin"))
	require.Len(t, user.Medications, 1)
	assert.Equal(t, "Vitamin D", user.Medications[0].Name)
}

func TestMedication_ScheduledOn(t *testing.T) {
	med := &Medication{Name: "Aspirin", Time: "09:00", Days: []int{1, 3, 5}}

	assert.True(t, med.ScheduledOn(1))
	assert.True(t, med.ScheduledOn(5))
	assert.False(t, med.ScheduledOn(7))
}
