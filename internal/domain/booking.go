package domain

import "strings"

type Mode string

const (
	ModeOneCamera Mode = "ONE_CAMERA"
	ModeAudioOnly Mode = "AUDIO_ONLY"
	ModeMusic     Mode = "MUSIC"
)

// ParseMode matches a mode name case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeOneCamera, ModeAudioOnly, ModeMusic:
		return Mode(strings.ToUpper(strings.TrimSpace(s))), true
	default:
		return "", false
	}
}

// BookingRequest is the untrusted client payload for /quote and /checkout.
type BookingRequest struct {
	Hours          FlexFloat   `json:"hours"`
	Mode           string      `json:"mode"`
	EngineerChoice string      `json:"engineerChoice"`
	ExtraCameras   FlexInt     `json:"extraCameras"`
	PeopleOnCamera FlexInt     `json:"peopleOnCamera"`
	Teleprompter   FlexBool    `json:"teleprompter"`
	RemoteGuest    FlexBool    `json:"remoteGuest"`
	AdClips5       FlexBool    `json:"adClips5"`
	MediaSdOrUsb   FlexBool    `json:"mediaSdOrUsb"`
	PostProduction OptionalInt `json:"postProduction"`
	IsFirstTime    FlexBool    `json:"isFirstTime"`
	Date           string      `json:"date"`
	StartTime      string      `json:"startTime"`
	CouponCode     string      `json:"couponCode"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Room           string      `json:"room"`
	Notes          string      `json:"notes"`

	// Checkout-only fields.
	HoldID   string    `json:"holdId"`
	Customer *Customer `json:"customer"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ContactName returns the effective contact name, preferring the nested
// customer object when present.
func (r *BookingRequest) ContactName() string {
	if r.Customer != nil && r.Customer.Name != "" {
		return r.Customer.Name
	}
	return r.Name
}

func (r *BookingRequest) ContactEmail() string {
	if r.Customer != nil && r.Customer.Email != "" {
		return r.Customer.Email
	}
	return r.Email
}

func (r *BookingRequest) ContactPhone() string {
	if r.Customer != nil && r.Customer.Phone != "" {
		return r.Customer.Phone
	}
	return r.Phone
}

// WantsEngineer reports whether an hourly engineer fee applies. "none" and
// empty opt out; "any", "specific" or a concrete engineer name opt in.
func (r *BookingRequest) WantsEngineer() bool {
	choice := strings.ToLower(strings.TrimSpace(r.EngineerChoice))
	return choice != "" && choice != "none"
}

// Normalized is a BookingRequest after clamping and defaulting. All pricing
// runs off this; the raw request is only consulted for pass-through fields.
type Normalized struct {
	Hours          int
	Mode           Mode
	WantsEngineer  bool
	ExtraCameras   int
	PeopleOnCamera int
	Teleprompter   bool
	RemoteGuest    bool
	AdClips5       bool
	MediaSdOrUsb   bool
	IsFirstTime    bool

	IncludedCams int
	TotalCams    int
	EditCams     int

	Room      string
	Date      string
	StartTime string
}
