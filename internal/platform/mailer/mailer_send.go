package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/brightroom/studio-bookings/internal/checkout"
)

type Mailer struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	Enabled bool
}

func NewMailer(apiKey, fromName, fromEmail string) *Mailer {
	m := &Mailer{
		Enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
	if m.Enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}
	return m
}

func (m *Mailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	if !m.Enabled {
		return "", errors.New("mailer disabled (missing MAILERSEND_API_KEY or MAILER_FROM_EMAIL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	// MailerSend uses X-Message-Id
	return res.Header.Get("X-Message-Id"), nil
}

func (m *Mailer) SendBookingConfirmation(b checkout.FulfillmentBooking) error {
	subject := fmt.Sprintf("Your session is booked for %s at %s", b.Date, b.StartTime)
	text, html := confirmationBody(b)
	_, err := m.Send(b.Email, b.Name, subject, text, html)
	return err
}

func confirmationBody(b checkout.FulfillmentBooking) (text, html string) {
	total := float64(b.TotalCents) / 100
	text = fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\nRoom: %s\nDate: %s\nStart: %s\nHours: %d\nSession: %s\nTotal paid: $%.2f\n\nSee you in the studio!",
		b.Name, b.Room, b.Date, b.StartTime, b.Hours, b.Mode, total)
	html = fmt.Sprintf(
		`<p>Hi %s,</p><p>Your booking is confirmed.</p><ul><li>Room: <b>%s</b></li><li>Date: <b>%s</b></li><li>Start: <b>%s</b></li><li>Hours: <b>%d</b></li><li>Session: <b>%s</b></li><li>Total paid: <b>$%.2f</b></li></ul><p>See you in the studio!</p>`,
		b.Name, b.Room, b.Date, b.StartTime, b.Hours, b.Mode, total)
	return text, html
}
