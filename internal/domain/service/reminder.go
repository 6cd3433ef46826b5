package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medminder/internal/domain"
	"github.com/medtrack/medminder/internal/domain/contract"
)

// reminderScheduler drives the periodic reminder sweep: one pass over every
// user's medications per tick, single-threaded so sweeps never overlap.
type reminderScheduler struct {
	dm         contract.DataManager
	dispatcher contract.ReminderDispatcher
	clock      contract.Clock
	interval   time.Duration
	stopChan   chan struct{}
	running    bool
}

func newReminderScheduler(dm contract.DataManager, dispatcher contract.ReminderDispatcher, clock contract.Clock, interval time.Duration) *reminderScheduler {
	return &reminderScheduler{
		dm:         dm,
		dispatcher: dispatcher,
		clock:      clock,
		interval:   interval,
		stopChan:   make(chan struct{}),
		running:    false,
	}
}

func (s *reminderScheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	log.Printf("Reminder scheduler starting (interval %s)...", s.interval)
	go s.mainLoop()
}

func (s *reminderScheduler) Stop() {
	if !s.running {
		return
	}
	log.Println("Reminder scheduler stopping...")
	close(s.stopChan)
	s.running = false
}

func (s *reminderScheduler) mainLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one evaluation pass. The clock is read exactly once so a sweep
// straddling midnight applies the same day to every user. A stop signal is
// honored between medications: the dispatch+persist step in flight always
// completes, so no half-written marker is left behind.
//
// Failure semantics: a send failure or a save failure leaves the marker
// unset and the next tick retries, so delivery degrades to at-least-once
// under failure and stays at-most-once per day otherwise.
func (s *reminderScheduler) Sweep() {
	now := s.clock.Now()
	today := domain.DateOf(now)
	sweepID := uuid.NewString()[:8]

	usernames, err := s.dm.User().ListUsernames()
	if err != nil {
		log.Printf("[sweep %s] Failed to list users: %v", sweepID, err)
		return
	}

	for _, username := range usernames {
		select {
		case <-s.stopChan:
			log.Printf("[sweep %s] Stop requested, aborting sweep", sweepID)
			return
		default:
		}

		user, err := s.dm.User().GetByUsername(username)
		if err != nil {
			log.Printf("[sweep %s] Failed to load user %s: %v", sweepID, username, err)
			continue
		}
		if user == nil {
			continue
		}

		for _, med := range user.Medications {
			if domain.Evaluate(med, now) != domain.Due {
				continue
			}

			if !s.dispatcher.DispatchReminder(user, med) {
				continue
			}

			med.LastSentDate = today
			err := s.dm.WithTransaction(context.Background(), func(dm contract.DataManager) error {
				return dm.User().Save(user)
			})
			if err != nil {
				// Marker change is lost; the next tick re-dispatches.
				log.Printf("[sweep %s] Failed to persist sent marker for %s/%s: %v", sweepID, username, med.Name, err)
				continue
			}

			log.Printf("[sweep %s] Reminder sent for %s/%s", sweepID, username, med.Name)
		}
	}
}
