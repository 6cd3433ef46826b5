package notify

import (
	"fmt"
	"log"

	"github.com/medtrack/medminder/internal/domain/contract"
	"github.com/medtrack/medminder/internal/domain/entity"
)

// Channel is one delivery mechanism for reminder messages. Deliver returns
// false when the channel is not available for the user (missing address,
// unresolved carrier); that is a capability gap, not an error.
type Channel interface {
	Name() string
	Deliver(user *entity.User, subject, body string) (bool, error)
}

type emailChannel struct {
	sender contract.Sender
}

// NewEmailChannel creates the direct email channel.
func NewEmailChannel(sender contract.Sender) Channel {
	return &emailChannel{sender: sender}
}

func (c *emailChannel) Name() string {
	return "email"
}

func (c *emailChannel) Deliver(user *entity.User, subject, body string) (bool, error) {
	if user.Email == "" {
		return false, nil
	}
	if err := c.sender.Send(user.Email, subject, body); err != nil {
		return true, fmt.Errorf("failed to send email to %s: %w", user.Email, err)
	}
	return true, nil
}

type smsGatewayChannel struct {
	sender   contract.Sender
	gateways map[string]string
}

// NewSMSGatewayChannel creates the SMS-via-email channel. The gateways map
// resolves a carrier name to the email domain of its SMS gateway; users with
// an unknown carrier simply don't get SMS coverage.
func NewSMSGatewayChannel(sender contract.Sender, gateways map[string]string) Channel {
	return &smsGatewayChannel{sender: sender, gateways: gateways}
}

func (c *smsGatewayChannel) Name() string {
	return "sms"
}

func (c *smsGatewayChannel) Deliver(user *entity.User, subject, body string) (bool, error) {
	if user.PhoneNumber == "" {
		return false, nil
	}

	domain, ok := c.gateways[user.Carrier]
	if !ok {
		log.Printf("No SMS gateway for carrier %q, skipping SMS for user %s", user.Carrier, user.Username)
		return false, nil
	}

	address := fmt.Sprintf("%s@%s", user.PhoneNumber, domain)
	if err := c.sender.Send(address, subject, body); err != nil {
		return true, fmt.Errorf("failed to send SMS to %s: %w", address, err)
	}
	return true, nil
}
