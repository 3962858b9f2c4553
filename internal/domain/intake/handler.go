package intake

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/httpjson"
)

const maxMessageBytes = 64 << 10

type parseRequest struct {
	Text string `json:"text"`
}

// ParseHandler acepta {"text": "..."} o el mensaje crudo como text/plain.
// @Summary Convierte un mensaje de cadastro en borrador de ficha
// @Tags intake
// @Accept json
// @Produce json
// @Success 200 {object} Result
// @Router /api/intake/parse [post]
func ParseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var text string

		mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mt == "text/plain" {
			b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageBytes))
			if err != nil {
				httpjson.WriteError(w, apperr.Validation("request body too large"))
				return
			}
			text = string(b)
		} else {
			var req parseRequest
			if err := httpjson.DecodeJSON(w, r, maxMessageBytes, &req); err != nil {
				httpjson.WriteError(w, err)
				return
			}
			text = req.Text
		}

		if strings.TrimSpace(text) == "" {
			httpjson.WriteError(w, apperr.Validation("text is required"))
			return
		}
		httpjson.WriteJSON(w, http.StatusOK, Parse(text))
	}
}
