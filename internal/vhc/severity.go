// Package vhc implements the Vehicle Health Check summarization and
// financial-aggregation engine.
//
// The engine is pure: every function takes in-memory records produced by
// the persistence layer and returns derived results. Nothing here performs
// I/O, caches, or mutates its inputs, so the whole package is safe to call
// from concurrent requests.
//
// This file defines the severity model: the canonical Red/Amber/Green/Grey
// scale, normalization of technician-entered status strings, and the
// dominance rule used to combine multiple severity signals into one badge.
package vhc

import (
	"strings"
	"unicode"
)

// =============================================================================
// Severity
// =============================================================================

// Severity is a canonical inspection severity, ordered by urgency.
type Severity string

const (
	// SeverityRed indicates work is required immediately.
	SeverityRed Severity = "Red"

	// SeverityAmber indicates advisory work that will be needed soon.
	SeverityAmber Severity = "Amber"

	// SeverityGreen indicates the item checked out fine.
	SeverityGreen Severity = "Green"

	// SeverityGrey indicates the item was not checked.
	SeverityGrey Severity = "Grey"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is a recognized value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityRed, SeverityAmber, SeverityGreen, SeverityGrey:
		return true
	}
	return false
}

// Priority returns the urgency rank of the severity. Higher values win
// when severities are combined. Unrecognized severities rank below Grey.
func (s Severity) Priority() int {
	switch s {
	case SeverityRed:
		return 3
	case SeverityAmber:
		return 2
	case SeverityGreen:
		return 1
	case SeverityGrey:
		return 0
	}
	return -1
}

// =============================================================================
// Status
// =============================================================================

// Status is a normalized inspection status: either one of the four known
// severities, or a free-text label the technician typed that does not map
// onto the scale. Labels are preserved (sentence-cased) rather than dropped
// so bespoke text like "Needs monitoring" still renders on the dashboard.
//
// The zero Status means "no status recorded".
type Status struct {
	Severity Severity // set when the raw value mapped to a known severity
	Label    string   // set when the raw value did not map; preserved verbatim
}

// IsZero returns true when no status was recorded at all.
func (s Status) IsZero() bool {
	return s.Severity == "" && s.Label == ""
}

// Known returns true when the status is one of the four canonical severities.
func (s Status) Known() bool {
	return s.Severity != ""
}

// Is returns true when the status is the given known severity.
func (s Status) Is(sev Severity) bool {
	return s.Severity == sev
}

// String returns the display form of the status: the severity name, the
// preserved label, or the empty string for the zero Status.
func (s Status) String() string {
	if s.Known() {
		return string(s.Severity)
	}
	return s.Label
}

// MarshalJSON renders the status as a JSON string, or null when unset.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + s.String() + `"`), nil
}

// =============================================================================
// Normalization
// =============================================================================

// severityAliases maps lower-cased technician inputs onto the canonical
// scale. "replace" is treated as Red: a part flagged for replacement is an
// immediate-work item on the checksheet.
var severityAliases = map[string]Severity{
	"red":      SeverityRed,
	"critical": SeverityRed,
	"high":     SeverityRed,
	"replace":  SeverityRed,

	"amber":        SeverityAmber,
	"warning":      SeverityAmber,
	"medium":       SeverityAmber,
	"yellow":       SeverityAmber,
	"visual check": SeverityAmber,

	"green": SeverityGreen,
	"ok":    SeverityGreen,
	"low":   SeverityGreen,
	"good":  SeverityGreen,

	"grey":        SeverityGrey,
	"gray":        SeverityGrey,
	"not checked": SeverityGrey,
}

// NormaliseStatus maps a raw status string onto a Status. Matching is
// case-insensitive and ignores surrounding whitespace. Unknown non-empty
// strings pass through as sentence-cased labels; empty input yields the
// zero Status.
func NormaliseStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return Status{}
	}
	if sev, ok := severityAliases[key]; ok {
		return Status{Severity: sev}
	}
	return Status{Label: sentenceCase(key)}
}

// DominantStatus normalizes each raw value and returns the highest-priority
// known severity seen. Ties resolve to the first-seen value of the winning
// priority. When nothing normalizes to a known severity the first preserved
// label wins, so a recorded status is never silently lost.
func DominantStatus(raws ...string) Status {
	statuses := make([]Status, 0, len(raws))
	for _, raw := range raws {
		statuses = append(statuses, NormaliseStatus(raw))
	}
	return dominant(statuses...)
}

// dominant applies the dominance rule over already-normalized statuses.
func dominant(statuses ...Status) Status {
	var best, fallback Status
	for _, st := range statuses {
		if st.IsZero() {
			continue
		}
		if !st.Known() {
			if fallback.IsZero() {
				fallback = st
			}
			continue
		}
		if !best.Known() || st.Severity.Priority() > best.Severity.Priority() {
			best = st
		}
	}
	if best.Known() {
		return best
	}
	return fallback
}

// sentenceCase upper-cases the first rune of an already lower-cased string.
func sentenceCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
