// ABOUTME: Calendar day keys in YYYYMMDD form.
// ABOUTME: Callers normalize free-text dates here before handing them to the store.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the layout of a day key.
const DayLayout = "20060102"

var dayLayouts = []string{
	DayLayout,
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
}

// NormalizeDay converts a free-text date into a day key. It accepts "today",
// "yesterday" (relative to now) and the layouts in dayLayouts.
func NormalizeDay(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "today":
		return DayKey(now), nil
	case "yesterday":
		return DayKey(now.AddDate(0, 0, -1)), nil
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayKey(t), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q (use YYYYMMDD or YYYY-MM-DD)", s)
}

// DayKey formats t as a day key.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// DisplayDay renders an 8-digit day key as YYYY-MM-DD. Anything else is
// returned unchanged.
func DisplayDay(key string) string {
	if len(key) != 8 {
		return key
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return key
		}
	}
	return key[:4] + "-" + key[4:6] + "-" + key[6:]
}
