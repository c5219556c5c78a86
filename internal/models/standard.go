package models

// Standard is a grade level offered by the academy. Level is bounded 1..12.
type Standard struct {
	ID          string         `json:"_id,omitempty"`
	Name        string         `json:"name"`
	Level       int            `json:"level"`
	Description string         `json:"description,omitempty"`
	IsActive    bool           `json:"isActive"`
	Subjects    []Ref[Subject] `json:"subjects,omitempty"`
}

// GetID implements Identifiable.
func (s Standard) GetID() string { return s.ID }
