package pricing

import (
	"math"
	"strings"

	"github.com/brightroom/studio-bookings/internal/domain"
)

// Normalize clamps and defaults a raw booking request into canonical values.
// It never rejects: garbage becomes a documented fallback, and out-of-range
// numbers are pulled back into range. Rejection is the validator's job.
func Normalize(req *domain.BookingRequest, cfg Config) domain.Normalized {
	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		mode = cfg.DefaultMode
	}
	rate := cfg.ModeRate(mode)

	hours := int(math.Round(req.Hours.Float()))
	floor := cfg.MinHours
	if req.IsFirstTime.Bool() && cfg.FirstTimeMinHours > floor {
		floor = cfg.FirstTimeMinHours
	}
	if hours < floor {
		hours = floor
	}
	if hours > cfg.MaxHours {
		hours = cfg.MaxHours
	}

	extraCams := req.ExtraCameras.Int()
	if extraCams < 0 {
		extraCams = 0
	}

	people := req.PeopleOnCamera.Int()
	if people < 1 {
		people = 1
	}

	// Reported camera count: informational only, never priced.
	totalCams := rate.IncludedCams + extraCams
	if people > totalCams {
		totalCams = people
	}

	// Absent postProduction defaults to editing every camera feed (capped);
	// an explicit 0 means no editing and must stay 0.
	editCams := 0
	if req.PostProduction.Set {
		editCams = req.PostProduction.Value
		if editCams < 0 {
			editCams = 0
		}
	} else {
		editCams = totalCams
	}
	if editCams > cfg.MaxEditCams {
		editCams = cfg.MaxEditCams
	}

	return domain.Normalized{
		Hours:          hours,
		Mode:           mode,
		WantsEngineer:  req.WantsEngineer(),
		ExtraCameras:   extraCams,
		PeopleOnCamera: people,
		Teleprompter:   req.Teleprompter.Bool(),
		RemoteGuest:    req.RemoteGuest.Bool(),
		AdClips5:       req.AdClips5.Bool(),
		MediaSdOrUsb:   req.MediaSdOrUsb.Bool(),
		IsFirstTime:    req.IsFirstTime.Bool(),

		IncludedCams: rate.IncludedCams,
		TotalCams:    totalCams,
		EditCams:     editCams,

		Room:      strings.TrimSpace(req.Room),
		Date:      strings.TrimSpace(req.Date),
		StartTime: strings.TrimSpace(req.StartTime),
	}
}
