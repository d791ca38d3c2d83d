package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/utils"
)

// Violation is a single user-facing business-rule failure.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Violations []Violation

func (v Violations) Error() string {
	reasons := make([]string, 0, len(v))
	for _, viol := range v {
		reasons = append(reasons, viol.Reason)
	}
	return strings.Join(reasons, "; ")
}

// Rules holds the booking-level constraints, independent of pricing.
//
// The chosen rule set: bookings need at least MinLeadDays of lead time,
// Sundays are closed (Saturdays are open), and sessions must start between
// OpenMinute and LastStartMinute. Sessions may run past closing.
type Rules struct {
	MinLeadDays       int
	ClosedWeekdays    []time.Weekday
	OpenMinute        int
	LastStartMinute   int
	MinHours          int
	MaxHours          int
	FirstTimeMinHours int
}

func DefaultRules() Rules {
	return Rules{
		MinLeadDays:       2,
		ClosedWeekdays:    []time.Weekday{time.Sunday},
		OpenMinute:        10 * 60,
		LastStartMinute:   19 * 60,
		MinHours:          1,
		MaxHours:          6,
		FirstTimeMinHours: 2,
	}
}

type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

func (v *Validator) Rules() Rules { return v.rules }

// Validate checks booking constraints for quoting. Scheduling fields are
// only checked when provided; checkout is stricter (see ValidateCheckout).
// An empty result means the booking passes.
func (v *Validator) Validate(req *domain.BookingRequest, now time.Time) Violations {
	var out Violations

	out = append(out, v.checkHours(req)...)

	if strings.TrimSpace(req.Date) != "" {
		out = append(out, v.checkDate(req.Date, now)...)
	}
	if strings.TrimSpace(req.StartTime) != "" {
		out = append(out, v.checkStartTime(req.StartTime)...)
	}

	return out
}

// ValidateCheckout applies the quoting rules plus the checkout-only
// requirements: a schedulable date and start time, and contact details.
func (v *Validator) ValidateCheckout(req *domain.BookingRequest, now time.Time) Violations {
	var out Violations

	out = append(out, v.checkHours(req)...)

	if strings.TrimSpace(req.Date) == "" {
		out = append(out, Violation{Field: "date", Reason: "date is required"})
	} else {
		out = append(out, v.checkDate(req.Date, now)...)
	}

	if strings.TrimSpace(req.StartTime) == "" {
		out = append(out, Violation{Field: "startTime", Reason: "start time is required"})
	} else {
		out = append(out, v.checkStartTime(req.StartTime)...)
	}

	if strings.TrimSpace(req.ContactName()) == "" {
		out = append(out, Violation{Field: "name", Reason: "name is required"})
	}
	if !utils.IsValidEmail(req.ContactEmail()) {
		out = append(out, Violation{Field: "email", Reason: "a valid email is required"})
	}
	if !utils.IsValidPhone(req.ContactPhone()) {
		out = append(out, Violation{Field: "phone", Reason: "a valid phone number is required"})
	}

	return out
}

func (v *Validator) checkHours(req *domain.BookingRequest) Violations {
	hours := int(math.Round(req.Hours.Float()))

	if hours < v.rules.MinHours || hours > v.rules.MaxHours {
		return Violations{{
			Field:  "hours",
			Reason: fmt.Sprintf("session length must be between %d and %d hours", v.rules.MinHours, v.rules.MaxHours),
		}}
	}
	if req.IsFirstTime.Bool() && hours < v.rules.FirstTimeMinHours {
		return Violations{{
			Field:  "hours",
			Reason: fmt.Sprintf("first-time bookings require at least %d hours", v.rules.FirstTimeMinHours),
		}}
	}
	return nil
}

func (v *Validator) checkDate(raw string, now time.Time) Violations {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), now.Location())
	if err != nil {
		return Violations{{Field: "date", Reason: "date must be in YYYY-MM-DD format"}}
	}

	for _, wd := range v.rules.ClosedWeekdays {
		if date.Weekday() == wd {
			return Violations{{
				Field:  "date",
				Reason: fmt.Sprintf("the studio is closed on %ss", wd),
			}}
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	earliest := today.AddDate(0, 0, v.rules.MinLeadDays)
	if date.Before(earliest) {
		return Violations{{
			Field:  "date",
			Reason: fmt.Sprintf("bookings require at least %d days of lead time", v.rules.MinLeadDays),
		}}
	}

	return nil
}

func (v *Validator) checkStartTime(raw string) Violations {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return Violations{{Field: "startTime", Reason: "start time must be in HH:MM format"}}
	}

	minute := parsed.Hour()*60 + parsed.Minute()
	if minute < v.rules.OpenMinute || minute > v.rules.LastStartMinute {
		return Violations{{
			Field: "startTime",
			Reason: fmt.Sprintf("sessions must start between %02d:%02d and %02d:%02d",
				v.rules.OpenMinute/60, v.rules.OpenMinute%60,
				v.rules.LastStartMinute/60, v.rules.LastStartMinute%60),
		}}
	}

	return nil
}
