package middleware

import (
	"log/slog"
	"net/http"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/apierr"
	"github.com/RenierDuminy/CTFDA-scoring/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// Logging re-exports the request logging middleware for the API router
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
