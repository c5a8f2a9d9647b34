package items

import (
	"strings"
	"time"
)

// AgeFlag classifies how long an item has been around.
type AgeFlag string

const (
	AgeNone    AgeFlag = ""
	AgeOld     AgeFlag = "old"
	AgeVeryOld AgeFlag = "very_old"
)

// AgeThresholds are the day counts at which items are flagged.
type AgeThresholds struct {
	OldAfterDays     int
	VeryOldAfterDays int
}

// DefaultAgeThresholds flags items at 30 and 60 days.
func DefaultAgeThresholds() AgeThresholds {
	return AgeThresholds{OldAfterDays: 30, VeryOldAfterDays: 60}
}

// timestamp layouts accepted for created_at, tried in order. Layouts without
// a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 created_at value.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AgeDays returns the number of whole days between created and now.
func AgeDays(created, now time.Time) int {
	return int(now.Sub(created) / (24 * time.Hour))
}

// Age classifies createdAt relative to now. Absent or unparseable timestamps
// are never flagged.
func (t AgeThresholds) Age(createdAt string, now time.Time) AgeFlag {
	created, ok := ParseTimestamp(createdAt)
	if !ok {
		return AgeNone
	}

	days := AgeDays(created, now)
	switch {
	case days >= t.VeryOldAfterDays:
		return AgeVeryOld
	case days >= t.OldAfterDays:
		return AgeOld
	default:
		return AgeNone
	}
}
