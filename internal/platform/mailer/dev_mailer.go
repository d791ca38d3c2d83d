package mailer

import (
	"fmt"

	"github.com/brightroom/studio-bookings/internal/checkout"
	"github.com/brightroom/studio-bookings/pkg/logger"
)

// DevMailer logs emails instead of sending them. Default when EMAIL_DEV_MODE
// is set or no MailerSend key is configured.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, _ string) (string, error) {
	logger.Info("📧 [DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
	)
	fmt.Printf("\n📧 DEV MAIL\nTo: %s (%s)\nSubject: %s\n\n%s\n\n", toEmail, toName, subject, text)
	return "dev", nil
}

func (d *DevMailer) SendBookingConfirmation(b checkout.FulfillmentBooking) error {
	subject := fmt.Sprintf("Your session is booked for %s at %s", b.Date, b.StartTime)
	text, _ := confirmationBody(b)
	_, err := d.Send(b.Email, b.Name, subject, text, "")
	return err
}
