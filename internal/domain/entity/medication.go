package entity

// Medication is a scheduled reminder entry. Time is stored as "HH:MM"
// (24-hour) and Days as ISO 8601 weekday numbers (1=Monday .. 7=Sunday).
//
// LastSentDate is the idempotence marker: the "2006-01-02" date of the last
// reminder dispatch, or "" when nothing has been sent since the last daily
// reset. The scheduler only ever mutates this field.
type Medication struct {
	Name         string `json:"name"`
	Time         string `json:"time"`
	Days         []int  `json:"days"`
	Dosage       string `json:"dosage,omitempty"`
	Notes        string `json:"notes,omitempty"`
	LastSentDate string `json:"last_sent_date,omitempty"`
}

// ScheduledOn reports whether the medication is scheduled on the given
// ISO weekday.
func (m *Medication) ScheduledOn(weekday int) bool {
	for _, day := range m.Days {
		if day == weekday {
			return true
		}
	}
	return false
}
