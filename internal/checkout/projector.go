package checkout

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/pricing"
	"github.com/brightroom/studio-bookings/internal/utils"
)

// LineItem is one priced component, ready for the payment provider.
// Amounts are integer cents; dollars never cross this boundary.
type LineItem struct {
	Label           string
	UnitAmountCents int64
	Quantity        int64
}

// SumCents returns the charge total across line items.
func SumCents(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitAmountCents * it.Quantity
	}
	return sum
}

// Projector maps a quote into payment line items and into the flat metadata
// record that rides on the payment session. The session is the only durable
// state between checkout and fulfillment, so metadata must carry everything
// needed to rebuild the booking.
type Projector struct {
	cfg pricing.Config
}

func NewProjector(cfg pricing.Config) *Projector {
	return &Projector{cfg: cfg}
}

var modeLabels = map[domain.Mode]string{
	domain.ModeOneCamera: "1-Camera Video Session",
	domain.ModeAudioOnly: "Audio-Only Session",
	domain.ModeMusic:     "Music Session",
}

func cents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Project produces one line item per nonzero priced component, in a stable
// order: base session, engineer, extra cameras, flat add-ons, post-production.
func (p *Projector) Project(q pricing.Quote, b domain.Normalized, req *domain.BookingRequest) ([]LineItem, map[string]string) {
	rate := p.cfg.ModeRate(b.Mode)
	hours := int64(q.Hours)

	items := []LineItem{{
		Label:           modeLabels[b.Mode],
		UnitAmountCents: cents(rate.HourlyRate),
		Quantity:        hours,
	}}

	if b.WantsEngineer {
		items = append(items, LineItem{
			Label:           "Audio Engineer",
			UnitAmountCents: cents(p.cfg.EngineerHourlyRate),
			Quantity:        hours,
		})
	}

	if b.ExtraCameras > 0 {
		if p.cfg.ExtraCamPolicy == pricing.ExtraCamFlatSession {
			items = append(items, LineItem{
				Label:           fmt.Sprintf("Extra Cameras (x%d)", b.ExtraCameras),
				UnitAmountCents: cents(p.cfg.ExtraCamSessionFee),
				Quantity:        1,
			})
		} else {
			items = append(items, LineItem{
				Label:           "Extra Camera",
				UnitAmountCents: cents(p.cfg.ExtraCamFee),
				Quantity:        int64(b.ExtraCameras),
			})
		}
	}

	if b.Teleprompter {
		items = append(items, LineItem{Label: "Teleprompter", UnitAmountCents: cents(p.cfg.AddOns.Teleprompter), Quantity: 1})
	}
	if b.RemoteGuest {
		items = append(items, LineItem{Label: "Remote Guest Connection", UnitAmountCents: cents(p.cfg.AddOns.RemoteGuest), Quantity: 1})
	}
	if b.AdClips5 {
		items = append(items, LineItem{Label: "5 Ad Clips", UnitAmountCents: cents(p.cfg.AddOns.AdClips5), Quantity: 1})
	}
	if b.MediaSdOrUsb {
		items = append(items, LineItem{Label: "SD Card / USB Media", UnitAmountCents: cents(p.cfg.AddOns.MediaSdOrUsb), Quantity: 1})
	}

	if q.Breakdown.PostProd.IsPositive() {
		items = append(items, LineItem{
			Label:           fmt.Sprintf("Post-Production (%d camera feeds)", q.EditCams),
			UnitAmountCents: cents(q.Breakdown.PostProd),
			Quantity:        1,
		})
	}

	return items, buildMetadata(q, b, req)
}

func buildMetadata(q pricing.Quote, b domain.Normalized, req *domain.BookingRequest) map[string]string {
	return map[string]string{
		"name":             req.ContactName(),
		"email":            utils.NormalizeEmail(req.ContactEmail()),
		"phone":            utils.NormalizePhone(req.ContactPhone()),
		"room":             b.Room,
		"date":             b.Date,
		"start_time":       b.StartTime,
		"hours":            strconv.Itoa(q.Hours),
		"mode":             string(q.Mode),
		"engineer_choice":  req.EngineerChoice,
		"extra_cameras":    strconv.Itoa(b.ExtraCameras),
		"people_on_camera": strconv.Itoa(b.PeopleOnCamera),
		"teleprompter":     strconv.FormatBool(b.Teleprompter),
		"remote_guest":     strconv.FormatBool(b.RemoteGuest),
		"ad_clips_5":       strconv.FormatBool(b.AdClips5),
		"media_sd_usb":     strconv.FormatBool(b.MediaSdOrUsb),
		"post_production":  strconv.Itoa(q.EditCams),
		"is_first_time":    strconv.FormatBool(b.IsFirstTime),
		"coupon_code":      req.CouponCode,
		"notes":            req.Notes,
		"total_cams":       strconv.Itoa(q.TotalCams),
		"total_cents":      strconv.FormatInt(q.TotalCents(), 10),
		"hold_id":          req.HoldID,
	}
}

// FulfillmentBooking is a booking reconstructed from session metadata after
// asynchronous payment completion.
type FulfillmentBooking struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Room           string `json:"room"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	Hours          int    `json:"hours"`
	Mode           string `json:"mode"`
	EngineerChoice string `json:"engineer_choice"`
	ExtraCameras   int    `json:"extra_cameras"`
	PeopleOnCamera int    `json:"people_on_camera"`
	Teleprompter   bool   `json:"teleprompter"`
	RemoteGuest    bool   `json:"remote_guest"`
	AdClips5       bool   `json:"ad_clips_5"`
	MediaSdOrUsb   bool   `json:"media_sd_usb"`
	PostProduction int    `json:"post_production"`
	IsFirstTime    bool   `json:"is_first_time"`
	CouponCode     string `json:"coupon_code,omitempty"`
	Notes          string `json:"notes,omitempty"`
	TotalCams      int    `json:"total_cams"`
	TotalCents     int64  `json:"total_cents"`
	HoldID         string `json:"hold_id,omitempty"`
}

// ParseMetadata rebuilds the booking from a session's metadata record.
// Missing or malformed values decode to zero values rather than erroring:
// by the time the webhook fires the customer has already paid, and a partial
// booking forwarded downstream beats a dropped one.
func ParseMetadata(md map[string]string) FulfillmentBooking {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(md[key])
		return n
	}
	parseBool := func(key string) bool {
		b, _ := strconv.ParseBool(md[key])
		return b
	}
	totalCents, _ := strconv.ParseInt(md["total_cents"], 10, 64)

	return FulfillmentBooking{
		Name:           md["name"],
		Email:          md["email"],
		Phone:          md["phone"],
		Room:           md["room"],
		Date:           md["date"],
		StartTime:      md["start_time"],
		Hours:          atoi("hours"),
		Mode:           md["mode"],
		EngineerChoice: md["engineer_choice"],
		ExtraCameras:   atoi("extra_cameras"),
		PeopleOnCamera: atoi("people_on_camera"),
		Teleprompter:   parseBool("teleprompter"),
		RemoteGuest:    parseBool("remote_guest"),
		AdClips5:       parseBool("ad_clips_5"),
		MediaSdOrUsb:   parseBool("media_sd_usb"),
		PostProduction: atoi("post_production"),
		IsFirstTime:    parseBool("is_first_time"),
		CouponCode:     md["coupon_code"],
		Notes:          md["notes"],
		TotalCams:      atoi("total_cams"),
		TotalCents:     totalCents,
		HoldID:         md["hold_id"],
	}
}
