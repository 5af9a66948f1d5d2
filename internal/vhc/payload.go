// This file contains the tolerant accessors and shape normalization used at
// the boundary between the raw technician payload and the section builders.
//
// The checksheet payload is authored by a tablet form and stored as loose
// JSON: keys go missing, sections arrive as arrays in one app version and
// as objects keyed by heading in another, and numbers show up as strings.
// Every accepted shape is converted into one canonical form here so the
// builders never branch on payload polymorphism themselves.
package vhc

import (
	"sort"
	"strconv"
	"strings"
)

// Payload is the raw technician checksheet as decoded JSON. Missing keys,
// wrong types, and partially-filled sub-objects are all tolerated; affected
// items are simply omitted from the summary.
type Payload map[string]any

// Top-level payload keys, one per inspection section.
const (
	keyWheelsTyres      = "wheelsTyres"
	keyBrakesHubs       = "brakesHubs"
	keyServiceIndicator = "serviceIndicator"
	keyExternal         = "externalInspection"
	keyInternal         = "internalElectrics"
	keyUnderside        = "underside"
)

// asMap returns v as an object, or nil when it is anything else.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asSlice returns v as an array, or nil when it is anything else.
func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asString renders v for display: strings are trimmed, JSON numbers are
// formatted, everything else is treated as absent.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// asBool returns v as a boolean plus whether it actually was one. The
// second return distinguishes "false" from "not a flag at all".
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// fieldString returns the first non-empty string found under the given keys.
func fieldString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := asString(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// parseReading parses a numeric measurement that may arrive as a JSON
// number or as a string with an optional "mm" suffix.
func parseReading(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(t), "mm"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// entryList converts a section sub-payload that may be either an array of
// entries or an object keyed by heading into one canonical ordered list.
// Object keys become the entry heading unless the entry already carries
// one; keys are visited in sorted order so repeated summarization of the
// same payload is structurally identical.
func entryList(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		entries := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m := asMap(e); m != nil {
				entries = append(entries, m)
			}
		}
		return entries
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]map[string]any, 0, len(keys))
		for _, k := range keys {
			m := asMap(t[k])
			if m == nil {
				continue
			}
			if asString(m["heading"]) == "" {
				withHeading := make(map[string]any, len(m)+1)
				for mk, mv := range m {
					withHeading[mk] = mv
				}
				withHeading["heading"] = k
				m = withHeading
			}
			entries = append(entries, m)
		}
		return entries
	}
	return nil
}

// recordList converts a sub-payload that may be a single record or an
// array of records into a list. Used by the service indicator section.
func recordList(v any) []map[string]any {
	if m := asMap(v); m != nil {
		return []map[string]any{m}
	}
	return entryList(v)
}
