package mailer

import "github.com/brightroom/studio-bookings/internal/checkout"

type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendBookingConfirmation(b checkout.FulfillmentBooking) error
}
