package customheaders

import (
	"net/http"
)

// NewMiddleware returns middleware which inject headers into the response.
// The headers are applied right before the status line is written, replacing
// any value an inner handler set for the same key, so every response carries
// exactly the given values, error pages included.
func NewMiddleware(handler http.Handler, headers http.Header) http.Handler {
	if len(headers) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, headers: headers}

		handler.ServeHTTP(rw, r)

		// handler returned without writing, net/http sends an empty 200
		rw.finalize()
	})
}

type responseWriter struct {
	http.ResponseWriter
	headers   http.Header
	finalized bool
}

func (w *responseWriter) finalize() {
	if w.finalized {
		return
	}
	w.finalized = true

	AddCustomHeaders(w.ResponseWriter, w.headers)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.finalize()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.finalize()
	return w.ResponseWriter.Write(data)
}

// Flush keeps streaming working for handlers that need it
func (w *responseWriter) Flush() {
	w.finalize()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
