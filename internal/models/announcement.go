package models

import "time"

// Announcement is a notice shown on the dashboard. Ones with a future
// StartTime count as upcoming.
type Announcement struct {
	ID        string    `json:"_id,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	StartTime time.Time `json:"startTime"`
}

// GetID implements Identifiable.
func (a Announcement) GetID() string { return a.ID }

// Upcoming reports whether the announcement starts after now.
func (a Announcement) Upcoming(now time.Time) bool {
	return a.StartTime.After(now)
}
