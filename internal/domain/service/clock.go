package service

import (
	"time"

	"github.com/medtrack/medminder/internal/domain/contract"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() contract.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
