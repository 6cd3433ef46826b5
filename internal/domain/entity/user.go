package entity

import "time"

// User owns an ordered list of medications. Usernames are the natural key;
// medication names are unique within a user.
type User struct {
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Carrier     string        `json:"carrier,omitempty"`
	Medications []*Medication `json:"medications"`
	CreatedAt   time.Time     `json:"created_at,omitzero"`
	UpdatedAt   time.Time     `json:"updated_at,omitzero"`
}

// Medication returns the medication with the given name, or nil.
func (u *User) Medication(name string) *Medication {
	for _, med := range u.Medications {
		if med.Name == name {
			return med
		}
	}
	return nil
}

// AddMedication appends a medication, preserving insertion order.
// Returns false when a medication with the same name already exists.
func (u *User) AddMedication(med *Medication) bool {
	if u.Medication(med.Name) != nil {
		return false
	}
	u.Medications = append(u.Medications, med)
	return true
}

// RemoveMedication removes the medication with the given name.
// Returns false when no such medication exists.
func (u *User) RemoveMedication(name string) bool {
	for i, med := range u.Medications {
		if med.Name == name {
			u.Medications = append(u.Medications[:i], u.Medications[i+1:]...)
			return true
		}
	}
	return false
}
