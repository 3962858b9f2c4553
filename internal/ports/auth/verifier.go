package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Authenticator valida credenciales de admin y emite tokens.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Token, error)
}
