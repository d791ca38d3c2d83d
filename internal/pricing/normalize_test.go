package pricing_test

import (
	"testing"

	"github.com/brightroom/studio-bookings/internal/domain"
	"github.com/brightroom/studio-bookings/internal/pricing"
)

func normalize(t *testing.T, raw string) domain.Normalized {
	t.Helper()

	cfg := pricing.DefaultConfig()
	return pricing.Normalize(decode(t, raw), cfg)
}

func TestNormalize_HoursClamping(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"below floor raised", `{"hours":0}`, 1},
		{"negative raised", `{"hours":-3}`, 1},
		{"above ceiling lowered", `{"hours":12}`, 6},
		{"in range kept", `{"hours":4}`, 4},
		{"quoted number parsed", `{"hours":"3"}`, 3},
		{"garbage defaults to floor", `{"hours":"lots"}`, 1},
		{"missing defaults to floor", `{}`, 1},
		{"first time floor is two", `{"hours":1,"isFirstTime":true}`, 2},
		{"first time truthy string", `{"hours":1,"isFirstTime":"yes"}`, 2},
		{"first time keeps larger hours", `{"hours":5,"isFirstTime":true}`, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(t, tt.raw).Hours; got != tt.want {
				t.Fatalf("expected hours %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNormalize_ModeFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Mode
	}{
		{"lowercase matched", `{"mode":"music"}`, domain.ModeMusic},
		{"mixed case matched", `{"mode":"Audio_Only"}`, domain.ModeAudioOnly},
		{"unknown falls back", `{"mode":"HOLOGRAM"}`, domain.ModeOneCamera},
		{"empty falls back", `{}`, domain.ModeOneCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(t, tt.raw).Mode; got != tt.want {
				t.Fatalf("expected mode %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalize_CameraCounts(t *testing.T) {
	b := normalize(t, `{"mode":"ONE_CAMERA","extraCameras":-2,"peopleOnCamera":0}`)
	if b.ExtraCameras != 0 {
		t.Fatalf("expected negative extraCameras clamped to 0, got %d", b.ExtraCameras)
	}
	if b.PeopleOnCamera != 1 {
		t.Fatalf("expected peopleOnCamera floor of 1, got %d", b.PeopleOnCamera)
	}

	b = normalize(t, `{"mode":"ONE_CAMERA","extraCameras":2,"peopleOnCamera":5}`)
	if b.TotalCams != 5 {
		t.Fatalf("expected totalCams max(1+2, 5) = 5, got %d", b.TotalCams)
	}
}

func TestNormalize_PostProductionAbsentVsZero(t *testing.T) {
	absent := normalize(t, `{"mode":"ONE_CAMERA","extraCameras":1}`)
	if absent.EditCams != 2 {
		t.Fatalf("absent postProduction should default to total cams, got %d", absent.EditCams)
	}

	null := normalize(t, `{"mode":"ONE_CAMERA","extraCameras":1,"postProduction":null}`)
	if null.EditCams != 2 {
		t.Fatalf("null postProduction should behave as absent, got %d", null.EditCams)
	}

	empty := normalize(t, `{"mode":"ONE_CAMERA","extraCameras":1,"postProduction":""}`)
	if empty.EditCams != 2 {
		t.Fatalf("empty-string postProduction should behave as absent, got %d", empty.EditCams)
	}

	zero := normalize(t, `{"mode":"ONE_CAMERA","extraCameras":1,"postProduction":0}`)
	if zero.EditCams != 0 {
		t.Fatalf("explicit 0 postProduction must stay 0, got %d", zero.EditCams)
	}

	explicit := normalize(t, `{"mode":"ONE_CAMERA","postProduction":"3"}`)
	if explicit.EditCams != 3 {
		t.Fatalf("quoted postProduction should parse, got %d", explicit.EditCams)
	}
}

func TestNormalize_BooleanishFlags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"bool true", `{"teleprompter":true}`, true},
		{"string true", `{"teleprompter":"true"}`, true},
		{"string yes", `{"teleprompter":"yes"}`, true},
		{"string on", `{"teleprompter":"on"}`, true},
		{"number one", `{"teleprompter":1}`, true},
		{"bool false", `{"teleprompter":false}`, false},
		{"string off", `{"teleprompter":"off"}`, false},
		{"missing", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(t, tt.raw).Teleprompter; got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalize_EngineerChoice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"any", `{"engineerChoice":"any"}`, true},
		{"specific", `{"engineerChoice":"specific"}`, true},
		{"named engineer", `{"engineerChoice":"Dana R."}`, true},
		{"none", `{"engineerChoice":"none"}`, false},
		{"none uppercase", `{"engineerChoice":"NONE"}`, false},
		{"empty", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(t, tt.raw).WantsEngineer; got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
