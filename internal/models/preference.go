package models

import (
	"fmt"
	"strconv"
)

// PreferenceKind discriminates PreferenceValue variants.
type PreferenceKind string

const (
	PrefString PreferenceKind = "string"
	PrefNumber PreferenceKind = "number"
	PrefBool   PreferenceKind = "bool"
)

// PreferenceValue is a small tagged union for stored preference values,
// replacing free-form dynamic values with static variants.
type PreferenceValue struct {
	Kind PreferenceKind `json:"kind"`
	Str  string         `json:"str,omitempty"`
	Num  float64        `json:"num,omitempty"`
	Bool bool           `json:"bool,omitempty"`
}

// StringPref builds a string-valued preference.
func StringPref(s string) PreferenceValue {
	return PreferenceValue{Kind: PrefString, Str: s}
}

// NumberPref builds a numeric preference.
func NumberPref(n float64) PreferenceValue {
	return PreferenceValue{Kind: PrefNumber, Num: n}
}

// BoolPref builds a boolean preference.
func BoolPref(b bool) PreferenceValue {
	return PreferenceValue{Kind: PrefBool, Bool: b}
}

// Display renders the value for user-facing output.
func (v PreferenceValue) Display() string {
	switch v.Kind {
	case PrefNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case PrefBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Encode serializes the value for flat key-value storage as "kind:payload".
func (v PreferenceValue) Encode() string {
	return fmt.Sprintf("%s:%s", v.Kind, v.Display())
}

// DecodePreference parses a value encoded with Encode. Unknown or malformed
// input decodes as a string preference of the raw text.
func DecodePreference(raw string) PreferenceValue {
	for _, kind := range []PreferenceKind{PrefString, PrefNumber, PrefBool} {
		prefix := string(kind) + ":"
		if len(raw) >= len(prefix) && raw[:len(prefix)] == prefix {
			payload := raw[len(prefix):]
			switch kind {
			case PrefNumber:
				if n, err := strconv.ParseFloat(payload, 64); err == nil {
					return NumberPref(n)
				}
			case PrefBool:
				if b, err := strconv.ParseBool(payload); err == nil {
					return BoolPref(b)
				}
			default:
				return StringPref(payload)
			}
		}
	}
	return StringPref(raw)
}
