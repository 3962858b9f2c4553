package auth

import "time"

const RoleAdmin = "admin"

// Claims representa la información extraída del token.
type Claims struct {
	Subject string
	Role    string
}

func (c Claims) IsAdmin() bool { return c.Role == RoleAdmin }

// Token es lo que se devuelve al hacer login.
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
