package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/mdsajjadhossain25/portfolio-backend/config"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// ContactNotifier tells the site owner about a new contact message
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg models.ContactMessage) error
}

type emailSender interface {
	SendEmail(ctx context.Context, subject, body, replyTo string, recipients []string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// EmailNotifier emails the owner; replying answers the visitor directly
type EmailNotifier struct {
	sender emailSender
	to     string
}

func NewEmailNotifier(sender emailSender, to string) EmailNotifier {
	return EmailNotifier{sender: sender, to: to}
}

func (n EmailNotifier) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	subject := "New contact message"
	if msg.Subject != "" {
		subject = "New contact message: " + msg.Subject
	}
	body := fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	return n.sender.SendEmail(ctx, subject, body, msg.Email, []string{n.to})
}

// SMSNotifier texts the owner a short summary
type SMSNotifier struct {
	sender smsSender
	to     string
}

func NewSMSNotifier(sender smsSender, to string) SMSNotifier {
	return SMSNotifier{sender: sender, to: to}
}

const smsPreviewLength = 120

func (n SMSNotifier) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	preview := []rune(msg.Message)
	if len(preview) > smsPreviewLength {
		preview = append(preview[:smsPreviewLength], '…')
	}
	return n.sender.SendSMS(ctx, n.to, fmt.Sprintf("Contact from %s (%s): %s", msg.Name, msg.Email, string(preview)))
}

// MultiNotifier fans a message out to every configured channel. A failing
// channel does not stop the others; all failures are joined.
type MultiNotifier []ContactNotifier

func (m MultiNotifier) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyContact(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewContactNotifier wires the channels that have credentials in cfg. With
// none configured the returned notifier does nothing.
func NewContactNotifier(cfg config.Config) MultiNotifier {
	var notifiers MultiNotifier
	if cfg.ResendAPIKey != "" && cfg.NotifyEmail != "" {
		notifiers = append(notifiers, NewEmailNotifier(NewResendMailer(cfg.ResendAPIKey, cfg.ResendFromEmail), cfg.NotifyEmail))
	}
	if cfg.TwilioAccountSID != "" && cfg.NotifyPhoneNumber != "" {
		notifiers = append(notifiers, NewSMSNotifier(NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber), cfg.NotifyPhoneNumber))
	}
	log.Info().Int("channels", len(notifiers)).Msg("Contact notifications configured")
	return notifiers
}
