package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/shoppay/internal/domain"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// respondDomainError writes only the public message and kind; the cause was
// already logged by the service.
func respondDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	respondError(w, domain.HTTPStatus(kind), string(kind), domain.PublicMessage(err))
}
