package notifications

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/metrics"
	"gopkg.in/gomail.v2"
)

// mailSender is the part of *gomail.Dialer the service uses
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailServiceImpl implements domain.NotificationService over SMTP
type EmailServiceImpl struct {
	sender mailSender
	from   string
	logger *log.Logger
}

// SMTPSettings holds the outbound mail server settings
type SMTPSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewEmailService creates a new email notification service.
// With no SMTP host configured, messages are logged instead of sent.
func NewEmailService(settings SMTPSettings, logger *log.Logger) domain.NotificationService {
	svc := &EmailServiceImpl{from: settings.From, logger: logger}
	if settings.Host != "" {
		svc.sender = gomail.NewDialer(settings.Host, settings.Port, settings.User, settings.Password)
	}
	return svc
}

// SendEmail implements domain.NotificationService
func (e *EmailServiceImpl) SendEmail(to, subject, body string) error {
	if e.sender == nil {
		e.logger.WithFields(log.Fields{
			"to":      to,
			"subject": subject,
			"body":    body,
		}).Info("[MOCK EMAIL]")
		metrics.ObserveEmail("mocked")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := e.sender.DialAndSend(m); err != nil {
		metrics.ObserveEmail("error")
		return fmt.Errorf("failed to send email: %w", err)
	}
	metrics.ObserveEmail("sent")
	return nil
}
