package models

import (
	"encoding/json"
	"fmt"
)

// StatusIcon is the single combined status derived from CI state, review
// decision, lifecycle state, merge-queue membership and mergeability.
// The priority reduction lives in the status package.
type StatusIcon int

const (
	StatusUnknown StatusIcon = iota
	StatusDoneMerged
	StatusDoneClosed
	StatusQueued
	StatusConflict
	StatusFailing
	StatusBlocked
	StatusRunning
	StatusAwaitingReview
	StatusReady
)

// Glyph returns the emoji shown in the menu and written to the snapshot
func (s StatusIcon) Glyph() string {
	switch s {
	case StatusDoneMerged:
		return "✅"
	case StatusDoneClosed:
		return "⚫"
	case StatusQueued:
		return "🚀"
	case StatusConflict:
		return "⚔️"
	case StatusFailing:
		return "❌"
	case StatusBlocked:
		return "🔴"
	case StatusRunning:
		return "🟡"
	case StatusAwaitingReview:
		return "🟣"
	case StatusReady:
		return "🟢"
	default:
		return "⚪"
	}
}

func (s StatusIcon) String() string {
	names := []string{
		"Unknown",
		"DoneMerged",
		"DoneClosed",
		"Queued",
		"Conflict",
		"Failing",
		"Blocked",
		"Running",
		"AwaitingReview",
		"Ready",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// MarshalJSON writes the glyph, which is what snapshot consumers expect
func (s StatusIcon) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Glyph())
}

// UnmarshalJSON accepts a glyph and maps it back to the enum
func (s *StatusIcon) UnmarshalJSON(data []byte) error {
	var glyph string
	if err := json.Unmarshal(data, &glyph); err != nil {
		return fmt.Errorf("status icon: %w", err)
	}
	for icon := StatusUnknown; icon <= StatusReady; icon++ {
		if icon.Glyph() == glyph {
			*s = icon
			return nil
		}
	}
	*s = StatusUnknown
	return nil
}
