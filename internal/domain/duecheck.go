package domain

import (
	"time"

	"github.com/medtrack/medminder/internal/domain/entity"
)

// TimeLayout is the stored medication time format (24-hour).
const TimeLayout = "15:04"

// DateLayout is the stored format of the last-sent marker.
const DateLayout = "2006-01-02"

// DueStatus is the outcome of evaluating a medication against the clock.
type DueStatus int

const (
	NotDue DueStatus = iota
	Due
	AlreadySent
)

func (s DueStatus) String() string {
	switch s {
	case Due:
		return "due"
	case AlreadySent:
		return "already_sent"
	default:
		return "not_due"
	}
}

// DateOf formats a time as a marker date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ISOWeekday returns the ISO 8601 weekday number (Monday=1 .. Sunday=7).
func ISOWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return Sunday
}

// Evaluate decides whether a medication is due at the given moment. It is
// pure: all scheduling tie-breaks live here.
//
// The time comparison is medTime <= now, not an exact-minute match, so a
// reminder skipped over by a coarse poll interval (or a late process start)
// still fires on the next tick. The last-sent marker wins over day and time:
// a medication marked sent today is AlreadySent no matter what the clock
// says. Malformed stored data (bad time string, empty day set) evaluates
// NotDue rather than failing.
func Evaluate(med *entity.Medication, now time.Time) DueStatus {
	if med.LastSentDate != "" && med.LastSentDate == DateOf(now) {
		return AlreadySent
	}

	if !med.ScheduledOn(ISOWeekday(now)) {
		return NotDue
	}

	medTime, err := time.Parse(TimeLayout, med.Time)
	if err != nil {
		return NotDue
	}

	medMinutes := medTime.Hour()*60 + medTime.Minute()
	nowMinutes := now.Hour()*60 + now.Minute()
	if medMinutes > nowMinutes {
		return NotDue
	}

	return Due
}
