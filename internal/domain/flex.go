package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The booking form posts loosely typed JSON: checkboxes arrive as true,
// "true", "on" or 1 depending on the client, and numeric fields may be
// quoted. These scalar types absorb that instead of rejecting the request.

// FlexBool decodes booleans from bools, numbers and truthy strings.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*b = n != 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "on", "y":
			*b = true
		default:
			*b = false
		}
		return nil
	}

	*b = false
	return nil
}

func (b FlexBool) Bool() bool { return bool(b) }

// FlexFloat decodes numbers from JSON numbers or numeric strings.
// Missing, malformed or non-finite values become 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			n = 0
		}
		*f = FlexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			n = 0
		}
		*f = FlexFloat(n)
		return nil
	}

	*f = 0
	return nil
}

func (f FlexFloat) Float() float64 { return float64(f) }

// FlexInt is FlexFloat truncated to an integer.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(int(f))
	return nil
}

func (i FlexInt) Int() int { return int(i) }

// OptionalInt distinguishes an absent or null field from an explicit 0.
// The zero value means "not provided".
type OptionalInt struct {
	Set   bool
	Value int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		o.Set = false
		o.Value = 0
		return nil
	}

	var i FlexInt
	if err := i.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Set = true
	o.Value = int(i)
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
