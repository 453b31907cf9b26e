package urilimiter

import (
	"net/http"

	"gitlab.com/ocr-extension/extension-server/internal/httperrors"
	"gitlab.com/ocr-extension/extension-server/internal/logging"
)

// NewMiddleware rejects requests whose RequestURI is longer than limit with a
// 414 page. A zero limit disables the check.
func NewMiddleware(handler http.Handler, limit int) http.Handler {
	if limit == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.RequestURI) > limit {
			logging.LogRequest(r).WithField("uri_length", len(r.RequestURI)).Debug("URI too long")
			httperrors.Serve414(w)

			return
		}

		handler.ServeHTTP(w, r)
	})
}
