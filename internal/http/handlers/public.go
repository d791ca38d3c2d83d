package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/holds"
	"github.com/brightroom/studio-bookings/internal/http/response"
	"github.com/brightroom/studio-bookings/internal/payments"
	"github.com/brightroom/studio-bookings/pkg/events"
	"github.com/brightroom/studio-bookings/pkg/logger"
)

// envCheck reports deploy health without leaking secrets: whether a payment
// key is present and which kind, never the key itself.
func (h *Handlers) envCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"hasKey": h.cfg.Stripe.SecretKey != "",
		"mode":   payments.KeyMode(h.cfg.Stripe.SecretKey),
		"port":   h.cfg.Server.Port,
	})
}

// services publishes the rate card and booking rules so the frontend renders
// prices from the same source the quote engine charges from.
func (h *Handlers) services(w http.ResponseWriter, r *http.Request) {
	cfg := h.calc.Config()

	modes := make([]map[string]interface{}, 0, len(cfg.Modes))
	for _, m := range []domain.Mode{domain.ModeOneCamera, domain.ModeAudioOnly, domain.ModeMusic} {
		rate, ok := cfg.Modes[m]
		if !ok {
			continue
		}
		modes = append(modes, map[string]interface{}{
			"mode":         string(m),
			"hourlyRate":   rate.HourlyRate.InexactFloat64(),
			"includedCams": rate.IncludedCams,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"modes":              modes,
		"engineerHourlyRate": cfg.EngineerHourlyRate.InexactFloat64(),
		"addOns": map[string]float64{
			"teleprompter": cfg.AddOns.Teleprompter.InexactFloat64(),
			"remoteGuest":  cfg.AddOns.RemoteGuest.InexactFloat64(),
			"adClips5":     cfg.AddOns.AdClips5.InexactFloat64(),
			"mediaSdOrUsb": cfg.AddOns.MediaSdOrUsb.InexactFloat64(),
		},
		"extraCameras": map[string]interface{}{
			"policy":     string(cfg.ExtraCamPolicy),
			"perCamera":  cfg.ExtraCamFee.InexactFloat64(),
			"perSession": cfg.ExtraCamSessionFee.InexactFloat64(),
		},
		"postProduction": map[string]interface{}{
			"policy":      string(cfg.PostProdPolicy),
			"firstCam":    cfg.PostProdFirstCamFee.InexactFloat64(),
			"addlCam":     cfg.PostProdAddlCamFee.InexactFloat64(),
			"perCam":      cfg.PostProdPerCamFee.InexactFloat64(),
			"maxEditCams": cfg.MaxEditCams,
		},
		"hours": map[string]int{
			"min":          cfg.MinHours,
			"max":          cfg.MaxHours,
			"firstTimeMin": cfg.FirstTimeMinHours,
		},
		"minLeadDays":    h.cfg.Scheduling.MinLeadDays,
		"holdTtlMinutes": int(h.cfg.Scheduling.HoldTTL.Minutes()),
		"rooms":          h.cfg.Scheduling.Rooms,
		"engineers":      h.cfg.Scheduling.Engineers,
	})
}

type slotDTO struct {
	Start     string `json:"start"`
	Available bool   `json:"available"`
}

// availability returns the day's slot grid for a room, marking slots that
// collide with an active hold or a calendar busy span.
func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	room := strings.TrimSpace(r.URL.Query().Get("room"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if room == "" || date == "" {
		response.BadRequest(w, "room and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format")
		return
	}

	busy, err := h.holds.BusyIntervals(r.Context(), room, date)
	if err != nil {
		logger.ErrorContext(r.Context(), "Availability lookup failed", "error", err, "room", room, "date", date)
		response.InternalError(w, "failed to load availability")
		return
	}

	rules := h.validator.Rules()
	step := int(h.cfg.Scheduling.SlotGranularity.Minutes())
	if step <= 0 {
		step = 60
	}

	var slots []slotDTO
	for minute := rules.OpenMinute; minute <= rules.LastStartMinute; minute += step {
		slot := holds.Interval{StartMinute: minute, EndMinute: minute + step}
		available := true
		for _, iv := range busy {
			if slot.Overlaps(iv) {
				available = false
				break
			}
		}
		slots = append(slots, slotDTO{
			Start:     fmt.Sprintf("%02d:%02d", minute/60, minute%60),
			Available: available,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"room":  room,
		"date":  date,
		"slots": slots,
	})
}

type holdRequest struct {
	Room      string         `json:"room"`
	Date      string         `json:"date"`
	StartTime string         `json:"startTime"`
	Hours     domain.FlexInt `json:"hours"`
}

func (h *Handlers) createHold(w http.ResponseWriter, r *http.Request) {
	var in holdRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	if strings.TrimSpace(in.Room) == "" || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.StartTime) == "" {
		response.BadRequest(w, "room, date and startTime are required")
		return
	}

	hours := in.Hours.Int()
	if hours < 1 {
		hours = 1
	}

	hold, err := h.holds.Create(r.Context(), strings.TrimSpace(in.Room), strings.TrimSpace(in.Date), in.StartTime, hours)
	if err != nil {
		if errors.Is(err, holds.ErrConflict) {
			response.Conflict(w, "time slot is no longer available")
			return
		}
		logger.ErrorContext(r.Context(), "Hold creation failed", "error", err)
		response.BadRequest(w, "could not place hold")
		return
	}

	h.publish(r.Context(), events.HoldCreated, events.HoldCreatedEvent{
		HoldID:    hold.ID,
		Room:      hold.Room,
		Date:      hold.Date,
		StartTime: hold.StartTime,
		Hours:     hold.Hours,
		ExpiresAt: hold.ExpiresAt,
		CreatedAt: hold.CreatedAt,
	})

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"holdId":    hold.ID,
		"expiresAt": hold.ExpiresAt,
	})
}

type cancelHoldRequest struct {
	HoldID string `json:"holdId"`
}

func (h *Handlers) cancelHold(w http.ResponseWriter, r *http.Request) {
	var in cancelHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.HoldID) == "" {
		response.BadRequest(w, "holdId is required")
		return
	}

	hold, err := h.holds.Cancel(r.Context(), in.HoldID)
	if err != nil {
		if errors.Is(err, holds.ErrNotFound) {
			response.NotFound(w, "hold not found")
			return
		}
		logger.ErrorContext(r.Context(), "Hold cancel failed", "error", err, "hold_id", in.HoldID)
		response.InternalError(w, "failed to cancel hold")
		return
	}

	h.publish(r.Context(), events.HoldCanceled, events.HoldCanceledEvent{
		HoldID:     hold.ID,
		Room:       hold.Room,
		Date:       hold.Date,
		CanceledAt: h.now(),
	})

	w.WriteHeader(http.StatusNoContent)
}
