package contract

import (
	"time"

	"github.com/medtrack/medminder/internal/domain/entity"
)

// Sender delivers a single message to one address. Direct email and the
// SMS-via-email gateway both go through this boundary.
// This allows mocking in tests while keeping the real implementation simple
type Sender interface {
	Send(to, subject, body string) error
}

// ReminderDispatcher fans a reminder out to every channel available for the
// user. It reports whether at least one channel accepted the message; the
// scheduler sets the sent marker only in that case.
type ReminderDispatcher interface {
	DispatchReminder(user *entity.User, med *entity.Medication) bool
}

// Clock supplies the current wall-clock time so the schedulers can be driven
// by a fixed or advancing clock in tests.
type Clock interface {
	Now() time.Time
}
