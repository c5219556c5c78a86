package models

// Student represents a learner registered with the academy. Records are owned
// by the backend; the console reads and writes the subset of fields below and
// passes everything through otherwise.
type Student struct {
	ID                 string        `json:"_id,omitempty"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Address            string        `json:"address,omitempty"`
	Gender             string        `json:"gender"`
	DateOfBirth        string        `json:"dateOfBirth,omitempty"`
	Standard           Ref[Standard] `json:"standard,omitempty"`
	Batches            []Ref[Batch]  `json:"batches,omitempty"`
	SchoolName         string        `json:"schoolName,omitempty"`
	Board              string        `json:"board,omitempty"`
	PreviousPercentage float64       `json:"previousPercentage"`
	JoiningDate        string        `json:"joiningDate,omitempty"`
	ParentName         string        `json:"parentName,omitempty"`
	ParentPhone        string        `json:"parentPhone,omitempty"`
	// Password is write-only: set on create, stripped from updates when blank.
	Password string `json:"password,omitempty"`
}

// GetID implements Identifiable.
func (s Student) GetID() string { return s.ID }
