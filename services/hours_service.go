package services

import (
	"fmt"
	"time"

	"venuepro-backend/models"
)

// DayHours is the resolved opening window for one date.
type DayHours struct {
	Opens         string `json:"opens"`
	Closes        string `json:"closes"`
	Closed        bool   `json:"closed"`
	KitchenClosed bool   `json:"kitchenClosed"`
	Reason        string `json:"reason,omitempty"`
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// WeeklyHoursFor pulls one weekday's entry out of the venue's JSONB hours.
// Missing or malformed entries resolve to closed.
func WeeklyHoursFor(hours models.JSONB, day time.Weekday) DayHours {
	entry, ok := hours[weekdayNames[day]].(map[string]interface{})
	if !ok {
		return DayHours{Closed: true}
	}

	resolved := DayHours{}
	if open, ok := entry["open"].(string); ok {
		resolved.Opens = open
	}
	if closeAt, ok := entry["close"].(string); ok {
		resolved.Closes = closeAt
	}
	if closed, ok := entry["closed"].(bool); ok {
		resolved.Closed = closed
	}
	if resolved.Opens == "" || resolved.Closes == "" {
		resolved.Closed = true
	}
	return resolved
}

// ResolveDayHours applies an exact-date override (if any) on top of the
// weekly default. An override always wins.
func ResolveDayHours(hours models.JSONB, override *models.BusinessHoursOverride, date time.Time) DayHours {
	resolved := WeeklyHoursFor(hours, date.Weekday())

	if override == nil {
		return resolved
	}

	switch override.Kind {
	case models.OverrideClosed:
		return DayHours{Closed: true, Reason: override.Reason}
	case models.OverrideModified:
		return DayHours{Opens: override.Opens, Closes: override.Closes, Reason: override.Reason}
	case models.OverrideKitchenClosed:
		resolved.KitchenClosed = true
		resolved.Reason = override.Reason
		return resolved
	default:
		return resolved
	}
}

// ServiceStatus is the "are we open right now" answer shown on the
// dashboard and public status endpoint.
type ServiceStatus struct {
	Open        bool   `json:"open"`
	KitchenOpen bool   `json:"kitchenOpen"`
	OpensAt     string `json:"opensAt,omitempty"`
	ClosesAt    string `json:"closesAt,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// StatusAt computes the live service status for a moment in time given the
// already-resolved hours for that date.
func StatusAt(day DayHours, now time.Time) ServiceStatus {
	status := ServiceStatus{Reason: day.Reason}
	if day.Closed {
		return status
	}

	nowHM := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())

	// A close of "00:00" or earlier than the open means trading runs past
	// midnight, so the window wraps around the day boundary.
	var open bool
	if day.Closes <= day.Opens {
		open = nowHM >= day.Opens || nowHM < day.Closes
	} else {
		open = nowHM >= day.Opens && nowHM < day.Closes
	}

	if open {
		status.Open = true
		status.KitchenOpen = !day.KitchenClosed
		status.ClosesAt = day.Closes
	} else if nowHM < day.Opens {
		status.OpensAt = day.Opens
	}
	return status
}
