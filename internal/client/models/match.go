package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// KnockoutGroup replaces the group of every knockout-stage match.
const KnockoutGroup = "Knockout"

// Match is one fixture as returned by the predictions endpoint.
//
// Only the fields the client derives from are typed. Everything else the
// backend sends (teams, scores, the user's prediction, ...) is kept in Extra
// and written back unchanged by MarshalJSON.
type Match struct {
	Date           string
	Time           string
	Timezone       string
	Knockout       bool
	Group          string
	LocalMatchTime string

	Extra map[string]any
}

var matchKnownKeys = map[string]struct{}{
	"date":             {},
	"time":             {},
	"timezone":         {},
	"knockout":         {},
	"group":            {},
	"local_match_time": {},
}

func (m *Match) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode match: %w", err)
	}

	*m = Match{
		Date:           stringValue(raw["date"]),
		Time:           stringValue(raw["time"]),
		Timezone:       stringValue(raw["timezone"]),
		Knockout:       truthy(raw["knockout"]),
		Group:          stringValue(raw["group"]),
		LocalMatchTime: stringValue(raw["local_match_time"]),
	}

	for k, v := range raw {
		if _, known := matchKnownKeys[k]; known {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]any)
		}
		m.Extra[k] = v
	}
	return nil
}

func (m Match) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+len(matchKnownKeys))
	for k, v := range m.Extra {
		out[k] = v
	}
	out["date"] = m.Date
	out["time"] = m.Time
	out["timezone"] = m.Timezone
	out["knockout"] = m.Knockout
	out["group"] = m.Group
	if m.LocalMatchTime != "" {
		out["local_match_time"] = m.LocalMatchTime
	}
	return json.Marshal(out)
}

// Field returns an extra field rendered as text, or "" when absent.
func (m Match) Field(key string) string {
	return stringValue(m.Extra[key])
}

// ExtraKeys returns the names of the extra fields in sorted order.
func (m Match) ExtraKeys() []string {
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of m.
func (m Match) Clone() Match {
	c := m
	if m.Extra != nil {
		c.Extra = cloneMap(m.Extra)
	}
	return c
}

// stringValue renders scalar JSON values the way a template would: nil is
// empty, numbers keep their literal text.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}

// truthy reports whether v would be considered true by the backend, which
// sends knockout either as a boolean or as 0/1.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != "" && t != "0" && t != "false"
	default:
		return false
	}
}
