package models

// BatchStatus enumerates the lifecycle states a batch moves through.
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "active"
	BatchStatusUpcoming  BatchStatus = "upcoming"
	BatchStatusCompleted BatchStatus = "completed"
)

// BatchSchedule captures when a batch meets. Times are "HH:MM" strings as the
// backend stores them.
type BatchSchedule struct {
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

// Batch is a scheduled group of students working through one subject.
type Batch struct {
	ID       string        `json:"_id,omitempty"`
	Name     string        `json:"name"`
	Subject  Ref[Subject]  `json:"subject,omitempty"`
	Schedule BatchSchedule `json:"schedule"`
	Status   BatchStatus   `json:"status,omitempty"`
}

// GetID implements Identifiable.
func (b Batch) GetID() string { return b.ID }
