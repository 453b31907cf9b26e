package testhelpers

import (
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertHTTP404 asserts handler returns 404 with provided str body
func AssertHTTP404(t *testing.T, handler http.Handler, url string, str interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code, "HTTP status")

	if str != nil {
		contentType, _, _ := mime.ParseMediaType(w.Header().Get("Content-Type"))
		require.Equal(t, "text/html", contentType, "Content-Type")
		require.Contains(t, w.Body.String(), str)
	}
}

// AssertCORSHeaders asserts the response carries the three cross-origin headers
func AssertCORSHeaders(t *testing.T, header http.Header) {
	t.Helper()

	require.Equal(t, []string{"*"}, header.Values("Access-Control-Allow-Origin"))
	require.Equal(t, []string{"GET, POST, OPTIONS"}, header.Values("Access-Control-Allow-Methods"))
	require.Equal(t, []string{"Content-Type"}, header.Values("Access-Control-Allow-Headers"))
}

// Close will call the close function on a closer as part
// of a t.Cleanup function.
func Close(t *testing.T, c io.Closer) {
	t.Helper()

	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
}

// ExtensionDir creates a temporary serving root holding files, keyed by
// slash separated path relative to the root. Symlinks in the temp dir are
// resolved so the returned path can be compared with resolved paths.
func ExtensionDir(tb testing.TB, files map[string]string) string {
	tb.Helper()

	dir, err := filepath.EvalSymlinks(tb.TempDir())
	require.NoError(tb, err)

	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(tb, os.WriteFile(path, []byte(contents), 0644))
	}

	return dir
}
