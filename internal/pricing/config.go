package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/brightroom/studio-bookings/internal/domain"
)

// ExtraCamPolicy selects how additional cameras beyond the mode's included
// count are charged. Both are flat per session, never hourly.
type ExtraCamPolicy string

const (
	// ExtraCamPerCamera charges ExtraCamFee once per extra camera.
	ExtraCamPerCamera ExtraCamPolicy = "per_camera"
	// ExtraCamFlatSession charges ExtraCamSessionFee once if any extra
	// cameras are requested, regardless of count.
	ExtraCamFlatSession ExtraCamPolicy = "flat_session"
)

// PostProdPolicy selects the post-production fee structure.
type PostProdPolicy string

const (
	// PostProdTiered charges a first-camera premium plus a lower fee for
	// each additional edited camera.
	PostProdTiered PostProdPolicy = "tiered"
	// PostProdLinear charges a flat per-camera fee with no premium.
	PostProdLinear PostProdPolicy = "linear"
)

type ModeRate struct {
	HourlyRate   decimal.Decimal
	IncludedCams int
}

type AddOnFees struct {
	Teleprompter decimal.Decimal
	RemoteGuest  decimal.Decimal
	AdClips5     decimal.Decimal
	MediaSdOrUsb decimal.Decimal
}

// Config is the versioned rate table. It is constructed once and passed into
// the Calculator; nothing in this package mutates it after construction.
type Config struct {
	Modes       map[domain.Mode]ModeRate
	DefaultMode domain.Mode

	EngineerHourlyRate decimal.Decimal
	AddOns             AddOnFees

	ExtraCamPolicy     ExtraCamPolicy
	ExtraCamFee        decimal.Decimal // per camera
	ExtraCamSessionFee decimal.Decimal // flat per session

	PostProdPolicy      PostProdPolicy
	PostProdFirstCamFee decimal.Decimal
	PostProdAddlCamFee  decimal.Decimal
	PostProdPerCamFee   decimal.Decimal
	MaxEditCams         int

	MinHours          int
	MaxHours          int
	FirstTimeMinHours int
}

func dollars(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// DefaultConfig returns the published rate card.
func DefaultConfig() Config {
	return Config{
		Modes: map[domain.Mode]ModeRate{
			domain.ModeOneCamera: {HourlyRate: dollars(55), IncludedCams: 1},
			domain.ModeAudioOnly: {HourlyRate: dollars(45), IncludedCams: 0},
			domain.ModeMusic:     {HourlyRate: dollars(60), IncludedCams: 1},
		},
		DefaultMode: domain.ModeOneCamera,

		EngineerHourlyRate: dollars(20),
		AddOns: AddOnFees{
			Teleprompter: dollars(25),
			RemoteGuest:  dollars(20),
			AdClips5:     dollars(100),
			MediaSdOrUsb: dollars(25),
		},

		ExtraCamPolicy:     ExtraCamPerCamera,
		ExtraCamFee:        dollars(25),
		ExtraCamSessionFee: dollars(100),

		PostProdPolicy:      PostProdTiered,
		PostProdFirstCamFee: dollars(200),
		PostProdAddlCamFee:  dollars(100),
		PostProdPerCamFee:   dollars(150),
		MaxEditCams:         4,

		MinHours:          1,
		MaxHours:          6,
		FirstTimeMinHours: 2,
	}
}

// ModeRate resolves the rate entry for a mode, falling back to the default
// mode for anything unknown.
func (c Config) ModeRate(m domain.Mode) ModeRate {
	if r, ok := c.Modes[m]; ok {
		return r
	}
	return c.Modes[c.DefaultMode]
}

// ExtraCamCharge returns the session charge for the given extra-camera count
// under the configured policy.
func (c Config) ExtraCamCharge(count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	if c.ExtraCamPolicy == ExtraCamFlatSession {
		return c.ExtraCamSessionFee
	}
	return c.ExtraCamFee.Mul(decimal.NewFromInt(int64(count)))
}

// PostProdFee returns the editing fee for the given camera-feed count.
// Zero cameras always cost zero, under either policy.
func (c Config) PostProdFee(cams int) decimal.Decimal {
	if cams <= 0 {
		return decimal.Zero
	}
	if c.PostProdPolicy == PostProdLinear {
		return c.PostProdPerCamFee.Mul(decimal.NewFromInt(int64(cams)))
	}
	return c.PostProdFirstCamFee.Add(c.PostProdAddlCamFee.Mul(decimal.NewFromInt(int64(cams - 1))))
}
