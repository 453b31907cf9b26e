package urilimiter

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/ocr-extension/extension-server/internal/testhelpers"
)

func TestNewMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"x"}`)
	})

	tests := map[string]struct {
		limit          int
		url            string
		expectedStatus int
	}{
		"with_disabled_middleware": {
			limit:          0,
			url:            "/manifest.json?cache=bust&v=1234567890",
			expectedStatus: http.StatusOK,
		},
		"with_limit_set_to_request_length": {
			limit:          18,
			url:            "/manifest.json?v=1",
			expectedStatus: http.StatusOK,
		},
		"with_uri_length_exceeding_the_limit": {
			limit:          18,
			url:            "/manifest.json?v=12",
			expectedStatus: http.StatusRequestURITooLong,
		},
		"with_long_path": {
			limit:          18,
			url:            "/icons/icon-128.png",
			expectedStatus: http.StatusRequestURITooLong,
		},
	}
	for tn, tt := range tests {
		t.Run(tn, func(t *testing.T) {
			middleware := NewMiddleware(handler, tt.limit)

			ww := httptest.NewRecorder()
			rr := httptest.NewRequest(http.MethodGet, tt.url, nil)

			middleware.ServeHTTP(ww, rr)

			res := ww.Result()
			testhelpers.Close(t, res.Body)

			require.Equal(t, tt.expectedStatus, res.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				b, err := io.ReadAll(res.Body)
				require.NoError(t, err)

				require.Equal(t, `{"name":"x"}`, string(b))
			}
		})
	}
}
