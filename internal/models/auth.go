package models

// User is the authenticated operator of the console.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// GetID implements Identifiable.
func (u User) GetID() string { return u.ID }

// LoginRequest is the credential payload sent to the auth endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token and its user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
