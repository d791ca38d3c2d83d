package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/brightroom/studio-bookings/internal/domain"
)

// Breakdown itemizes a quote. Total must equal the exact sum of these parts.
type Breakdown struct {
	BaseSubtotal     decimal.Decimal
	EngineerSubtotal decimal.Decimal
	ExtrasSession    decimal.Decimal
	ExtraCams        decimal.Decimal
	PostProd         decimal.Decimal
}

func (b Breakdown) Sum() decimal.Decimal {
	return b.BaseSubtotal.
		Add(b.EngineerSubtotal).
		Add(b.ExtrasSession).
		Add(b.ExtraCams).
		Add(b.PostProd)
}

type Quote struct {
	Hours     int
	Mode      domain.Mode
	TotalCams int
	EditCams  int
	Breakdown Breakdown
	Total     decimal.Decimal
}

// TotalCents converts the quote total to integer cents.
func (q Quote) TotalCents() int64 {
	return q.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Calculator turns a normalized booking into a price breakdown. It is pure:
// no I/O, no clock, and identical input always yields an identical quote.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Config() Config { return c.cfg }

func (c *Calculator) Quote(b domain.Normalized) Quote {
	hours := decimal.NewFromInt(int64(b.Hours))
	rate := c.cfg.ModeRate(b.Mode)

	base := rate.HourlyRate.Mul(hours)

	engineer := decimal.Zero
	if b.WantsEngineer {
		engineer = c.cfg.EngineerHourlyRate.Mul(hours)
	}

	extras := decimal.Zero
	if b.Teleprompter {
		extras = extras.Add(c.cfg.AddOns.Teleprompter)
	}
	if b.RemoteGuest {
		extras = extras.Add(c.cfg.AddOns.RemoteGuest)
	}
	if b.AdClips5 {
		extras = extras.Add(c.cfg.AddOns.AdClips5)
	}
	if b.MediaSdOrUsb {
		extras = extras.Add(c.cfg.AddOns.MediaSdOrUsb)
	}

	extraCams := c.cfg.ExtraCamCharge(b.ExtraCameras)

	// EditCams of 0 must always price to 0, regardless of TotalCams.
	postProd := c.cfg.PostProdFee(b.EditCams)

	breakdown := Breakdown{
		BaseSubtotal:     base,
		EngineerSubtotal: engineer,
		ExtrasSession:    extras,
		ExtraCams:        extraCams,
		PostProd:         postProd,
	}

	return Quote{
		Hours:     b.Hours,
		Mode:      b.Mode,
		TotalCams: b.TotalCams,
		EditCams:  b.EditCams,
		Breakdown: breakdown,
		Total:     breakdown.Sum(),
	}
}
