package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/http/response"
	"github.com/brightroom/studio-bookings/internal/pricing"
)

type breakdownDTO struct {
	BaseSubtotal     float64 `json:"baseSubtotal"`
	EngineerSubtotal float64 `json:"engineerSubtotal"`
	ExtrasSession    float64 `json:"extrasSession"`
	ExtraCams        float64 `json:"extraCams"`
	PostProd         float64 `json:"postProd"`
}

type quoteDTO struct {
	Hours     int          `json:"hours"`
	Mode      string       `json:"mode"`
	TotalCams int          `json:"totalCams"`
	EditCams  int          `json:"editCams"`
	Breakdown breakdownDTO `json:"breakdown"`
	Total     float64      `json:"total"`
}

func toQuoteDTO(q pricing.Quote) quoteDTO {
	return quoteDTO{
		Hours:     q.Hours,
		Mode:      string(q.Mode),
		TotalCams: q.TotalCams,
		EditCams:  q.EditCams,
		Breakdown: breakdownDTO{
			BaseSubtotal:     q.Breakdown.BaseSubtotal.InexactFloat64(),
			EngineerSubtotal: q.Breakdown.EngineerSubtotal.InexactFloat64(),
			ExtrasSession:    q.Breakdown.ExtrasSession.InexactFloat64(),
			ExtraCams:        q.Breakdown.ExtraCams.InexactFloat64(),
			PostProd:         q.Breakdown.PostProd.InexactFloat64(),
		},
		Total: q.Total.InexactFloat64(),
	}
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	if violations := h.validator.Validate(&req, h.now()); len(violations) > 0 {
		writeViolations(w, violations)
		return
	}

	norm := pricing.Normalize(&req, h.calc.Config())
	writeJSON(w, http.StatusOK, toQuoteDTO(h.calc.Quote(norm)))
}

// quoteDebug returns the quote plus the normalized input that produced it,
// so the frontend team can see what clamping and defaulting did to a payload.
func (h *Handlers) quoteDebug(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	if violations := h.validator.Validate(&req, h.now()); len(violations) > 0 {
		writeViolations(w, violations)
		return
	}

	norm := pricing.Normalize(&req, h.calc.Config())
	q := h.calc.Quote(norm)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"received": req,
		"totals":   toQuoteDTO(q),
		"normalized": map[string]interface{}{
			"hours":          norm.Hours,
			"mode":           string(norm.Mode),
			"wantsEngineer":  norm.WantsEngineer,
			"extraCameras":   norm.ExtraCameras,
			"peopleOnCamera": norm.PeopleOnCamera,
			"teleprompter":   norm.Teleprompter,
			"remoteGuest":    norm.RemoteGuest,
			"adClips5":       norm.AdClips5,
			"mediaSdOrUsb":   norm.MediaSdOrUsb,
			"isFirstTime":    norm.IsFirstTime,
			"includedCams":   norm.IncludedCams,
			"totalCams":      norm.TotalCams,
			"editCams":       norm.EditCams,
		},
		"totalCents": q.TotalCents(),
	})
}
