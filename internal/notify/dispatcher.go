package notify

import (
	"fmt"
	"log"
	"strings"

	"github.com/medtrack/medminder/internal/domain/contract"
	"github.com/medtrack/medminder/internal/domain/entity"
)

// Dispatcher composes the delivery channels, evaluated in order. Each channel
// is independently fallible: one failing does not stop the others.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher builds the default channel list: direct email first, then
// SMS via the carrier's email gateway.
func NewDispatcher(sender contract.Sender, gateways map[string]string) *Dispatcher {
	return &Dispatcher{
		channels: []Channel{
			NewEmailChannel(sender),
			NewSMSGatewayChannel(sender, gateways),
		},
	}
}

// DispatchReminder sends the reminder for one medication through every
// channel available for the user. It returns true when at least one channel
// accepted the message; only then may the caller mark the medication sent.
func (d *Dispatcher) DispatchReminder(user *entity.User, med *entity.Medication) bool {
	subject, body := BuildMessage(user, med)

	delivered := false
	attempted := 0
	for _, channel := range d.channels {
		attempted++
		available, err := channel.Deliver(user, subject, body)
		if !available {
			attempted--
			continue
		}
		if err != nil {
			log.Printf("Failed to deliver %q reminder for user %s via %s: %v", med.Name, user.Username, channel.Name(), err)
			continue
		}
		delivered = true
	}

	if attempted == 0 {
		log.Printf("No delivery channel available for user %s, reminder %q not sent", user.Username, med.Name)
	}

	return delivered
}

// BuildMessage renders the reminder subject and body. The subject names the
// medication; the body greets the user and includes dosage and notes only
// when present.
func BuildMessage(user *entity.User, med *entity.Medication) (subject, body string) {
	subject = fmt.Sprintf("Medication Reminder: %s", med.Name)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hello %s,\n\n", user.Username))
	if med.Dosage != "" {
		sb.WriteString(fmt.Sprintf("It's time to take your medication '%s' (%s).", med.Name, med.Dosage))
	} else {
		sb.WriteString(fmt.Sprintf("It's time to take your medication '%s'.", med.Name))
	}
	if med.Notes != "" {
		sb.WriteString(fmt.Sprintf("\n\nNotes: %s", med.Notes))
	}

	return subject, sb.String()
}
