package customheaders_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/ocr-extension/extension-server/internal/customheaders"
)

func TestParseHeaderString(t *testing.T) {
	tests := []struct {
		name          string
		headerStrings []string
		want          http.Header
		valid         bool
	}{
		{
			name:          "Normal case",
			headerStrings: []string{"X-Test-String: Test"},
			want:          http.Header{"X-Test-String": {"Test"}},
			valid:         true,
		},
		{
			name:          "Surrounding whitespace",
			headerStrings: []string{"   X-Test-String: Test  "},
			want:          http.Header{"X-Test-String": {"Test"}},
			valid:         true,
		},
		{
			name:          "Canonical key",
			headerStrings: []string{"cache-control: no-store"},
			want:          http.Header{"Cache-Control": {"no-store"}},
			valid:         true,
		},
		{
			name:          "Value containing colons",
			headerStrings: []string{"Content-Security-Policy: connect-src http://localhost:5000"},
			want:          http.Header{"Content-Security-Policy": {"connect-src http://localhost:5000"}},
			valid:         true,
		},
		{
			name:          "Repeated header",
			headerStrings: []string{"X-Dev: a", "X-Dev: b"},
			want:          http.Header{"X-Dev": {"a", "b"}},
			valid:         true,
		},
		{
			name:          "Missing colon",
			headerStrings: []string{"X-Test-String Some-Test"},
			valid:         false,
		},
		{
			name:          "Valid and not valid case",
			headerStrings: []string{"Cache-Control: no-cache", "test-case"},
			valid:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := customheaders.ParseHeaderString(tt.headerStrings)
			if !tt.valid {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAddCustomHeaders(t *testing.T) {
	tests := []struct {
		name        string
		existing    http.Header
		headers     http.Header
		wantHeaders map[string]string
	}{
		{
			name:        "Normal case",
			headers:     http.Header{"X-Test-String": []string{"Test"}},
			wantHeaders: map[string]string{"X-Test-String": "Test"},
		},
		{
			name:        "Replaces existing value",
			existing:    http.Header{"Access-Control-Allow-Origin": {"http://example.com"}},
			headers:     http.Header{"Access-Control-Allow-Origin": {"*"}},
			wantHeaders: map[string]string{"Access-Control-Allow-Origin": "*"},
		},
		{
			name:        "CORS headers",
			headers:     customheaders.CORS(),
			wantHeaders: map[string]string{"Access-Control-Allow-Origin": "*", "Access-Control-Allow-Methods": "GET, POST, OPTIONS", "Access-Control-Allow-Headers": "Content-Type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			for k, v := range tt.existing {
				w.Header()[k] = v
			}
			customheaders.AddCustomHeaders(w, tt.headers)
			rsp := w.Result()
			for k, v := range tt.wantHeaders {
				require.Len(t, rsp.Header[k], 1)

				got := rsp.Header[k][0]
				require.Equal(t, v, got, "Expected header %+v, got %+v", v, got)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	extra := http.Header{"X-Dev": {"1"}}
	merged := customheaders.Merge(customheaders.CORS(), extra)

	require.Equal(t, "*", merged.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "1", merged.Get("X-Dev"))

	// inputs are left untouched
	merged.Add("X-Dev", "2")
	require.Equal(t, []string{"1"}, extra["X-Dev"])
}

func TestMergeLaterSetReplacesKey(t *testing.T) {
	merged := customheaders.Merge(
		customheaders.CORS(),
		http.Header{"Access-Control-Allow-Origin": {"http://localhost:8080"}, "X-Dev": {"a", "b"}},
	)

	require.Equal(t, []string{"http://localhost:8080"}, merged.Values("Access-Control-Allow-Origin"))
	require.Equal(t, []string{"a", "b"}, merged.Values("X-Dev"))
	require.Equal(t, []string{"Content-Type"}, merged.Values("Access-Control-Allow-Headers"))
}

func TestNewMiddleware(t *testing.T) {
	tests := map[string]struct {
		status int
	}{
		"success":   {status: http.StatusOK},
		"not_found": {status: http.StatusNotFound},
		"error":     {status: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/manifest.json", nil)
			customheaders.NewMiddleware(handler, customheaders.CORS()).ServeHTTP(w, r)

			rsp := w.Result()
			require.Equal(t, tt.status, rsp.StatusCode)
			require.Equal(t, "*", rsp.Header.Get("Access-Control-Allow-Origin"))
			require.Equal(t, "GET, POST, OPTIONS", rsp.Header.Get("Access-Control-Allow-Methods"))
			require.Equal(t, "Content-Type", rsp.Header.Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestNewMiddlewareWithoutHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	require.NotNil(t, customheaders.NewMiddleware(handler, nil))
}

func TestNewMiddlewareOverridesInnerValues(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS")
		w.Header().Add("Access-Control-Allow-Origin", "http://example.com")
		_, _ = w.Write([]byte("ok"))
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/manifest.json", nil)
	customheaders.NewMiddleware(handler, customheaders.CORS()).ServeHTTP(w, r)

	rsp := w.Result()
	require.Equal(t, []string{"*"}, rsp.Header.Values("Access-Control-Allow-Origin"))
	require.Equal(t, []string{"GET, POST, OPTIONS"}, rsp.Header.Values("Access-Control-Allow-Methods"))
	require.Equal(t, "ok", w.Body.String())
}

func TestNewMiddlewareWithSilentHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	customheaders.NewMiddleware(handler, customheaders.CORS()).ServeHTTP(w, r)

	require.Equal(t, "Content-Type", w.Result().Header.Get("Access-Control-Allow-Headers"))
}
