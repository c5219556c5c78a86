package models

// Teacher is an instructor employed by the academy.
type Teacher struct {
	ID            string         `json:"_id,omitempty"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone,omitempty"`
	Qualification string         `json:"qualification,omitempty"`
	Subjects      []Ref[Subject] `json:"subjects,omitempty"`
}

// GetID implements Identifiable.
func (t Teacher) GetID() string { return t.ID }
