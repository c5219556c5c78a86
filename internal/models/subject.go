package models

// Subject is an academic subject referenced by standards and batches.
type Subject struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Duration    string `json:"duration,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// GetID implements Identifiable.
func (s Subject) GetID() string { return s.ID }
