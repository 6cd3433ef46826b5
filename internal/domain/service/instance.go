package service

import (
	"time"

	"github.com/medtrack/medminder/internal/domain/contract"
)

type Instance struct {
	Medication *medicationService
	Reminder   *reminderScheduler
	Reset      *resetScheduler
}

func NewInstance(dm contract.DataManager, dispatcher contract.ReminderDispatcher, clock contract.Clock, pollInterval time.Duration) *Instance {
	return &Instance{
		Medication: newMedicationService(dm),
		Reminder:   newReminderScheduler(dm, dispatcher, clock, pollInterval),
		Reset:      newResetScheduler(dm),
	}
}
