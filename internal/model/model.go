package model

// AccessToken is the JWT claims object of an authenticated session.
type AccessToken struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
