package models

// User is one account record. Email is always stored lower-cased.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}
