package service

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/medtrack/medminder/internal/domain/contract"
)

// resetScheduler clears every medication's sent marker once per day at local
// midnight, making yesterday's medications eligible again. cron handles the
// first wait being the remainder of the current day.
type resetScheduler struct {
	dm   contract.DataManager
	cron *cron.Cron
}

func newResetScheduler(dm contract.DataManager) *resetScheduler {
	return &resetScheduler{
		dm:   dm,
		cron: cron.New(),
	}
}

func (s *resetScheduler) Start() error {
	if _, err := s.cron.AddFunc("@midnight", s.ResetAll); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Daily reset scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running reset to finish.
func (s *resetScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Daily reset scheduler stopped")
}

// ResetAll clears the last-sent marker on every medication of every user,
// persisting only users that actually changed. Per-user failures are logged
// and do not stop the reset.
func (s *resetScheduler) ResetAll() {
	usernames, err := s.dm.User().ListUsernames()
	if err != nil {
		log.Printf("Daily reset: failed to list users: %v", err)
		return
	}

	resetCount := 0
	for _, username := range usernames {
		user, err := s.dm.User().GetByUsername(username)
		if err != nil {
			log.Printf("Daily reset: failed to load user %s: %v", username, err)
			continue
		}
		if user == nil {
			continue
		}

		changed := false
		for _, med := range user.Medications {
			if med.LastSentDate != "" {
				med.LastSentDate = ""
				changed = true
			}
		}
		if !changed {
			continue
		}

		err = s.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
			return dm.User().Save(user)
		})
		if err != nil {
			log.Printf("Daily reset: failed to save user %s: %v", username, err)
			continue
		}
		resetCount++
	}

	log.Printf("Daily reset completed, %d user(s) updated", resetCount)
}
