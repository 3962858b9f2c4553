// Package session expone el login de administrador.
package session

import (
	"net/http"
	"strings"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/httpjson"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/ports/auth"
)

type loginRequest struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// LoginHandler
// @Summary Login de administrador
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} auth.Token
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func LoginHandler(authn auth.Authenticator, log logger.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpjson.DecodeJSON(w, r, 4<<10, &req); err != nil {
			httpjson.WriteError(w, err)
			return
		}
		user := strings.TrimSpace(req.User)
		pass := strings.TrimSpace(req.Pass)
		if user == "" || pass == "" {
			httpjson.WriteError(w, apperr.Validation("user and pass are required"))
			return
		}

		tok, err := authn.Login(r.Context(), user, pass)
		if err != nil {
			log.Warn("admin login rejected", logger.Fields{"user": user, "error": err})
			httpjson.WriteError(w, err)
			return
		}
		log.Info("admin login", logger.Fields{"user": user})
		httpjson.WriteJSON(w, http.StatusOK, tok)
	}
}
