package httperrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// creates a new implementation of http.ResponseWriter that allows the
// casting of values in order to aid testing efforts.
type testResponseWriter struct {
	status  int
	content string
	http.ResponseWriter
}

func newTestResponseWriter(w http.ResponseWriter) *testResponseWriter {
	return &testResponseWriter{0, "", w}
}

func (w *testResponseWriter) Status() int {
	return w.status
}

func (w *testResponseWriter) Content() string {
	return w.content
}

func (w *testResponseWriter) Header() http.Header {
	return w.ResponseWriter.Header()
}

func (w *testResponseWriter) Write(data []byte) (int, error) {
	w.content = string(data)
	return w.ResponseWriter.Write(data)
}

func (w *testResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

var (
	testingContent = content{
		http.StatusNotFound,
		"Title",
		"533",
		"Header test",
		"subheader text",
	}
)

func requireErrorPage(t *testing.T, w *testResponseWriter, c content) {
	t.Helper()

	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.Equal(t, c.status, w.Status())
	require.Contains(t, w.Content(), c.title)
	require.Contains(t, w.Content(), c.statusString)
	require.Contains(t, w.Content(), c.header)
	require.Contains(t, w.Content(), c.subHeader)
}

func TestGenerateErrorHTML(t *testing.T) {
	actual := generateErrorHTML(testingContent)
	require.Contains(t, actual, testingContent.title)
	require.Contains(t, actual, testingContent.statusString)
	require.Contains(t, actual, testingContent.header)
	require.Contains(t, actual, testingContent.subHeader)
}

func TestServeErrorPages(t *testing.T) {
	tests := map[string]struct {
		serve   func(http.ResponseWriter)
		content content
	}{
		"403": {serve: Serve403, content: content403},
		"404": {serve: Serve404, content: content404},
		"414": {serve: Serve414, content: content414},
		"500": {serve: Serve500, content: content500},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestResponseWriter(httptest.NewRecorder())
			tt.serve(w)
			requireErrorPage(t, w, tt.content)
		})
	}
}

func TestServe501(t *testing.T) {
	w := newTestResponseWriter(httptest.NewRecorder())
	Serve501(w, http.MethodPost)

	require.Equal(t, http.StatusNotImplemented, w.Status())
	require.Contains(t, w.Content(), "Unsupported method (POST).")
	require.Contains(t, w.Content(), content501.subHeader)
}

func TestServe501EscapesMethod(t *testing.T) {
	w := newTestResponseWriter(httptest.NewRecorder())
	Serve501(w, "<script>")

	require.NotContains(t, w.Content(), "<script>")
	require.Contains(t, w.Content(), "&lt;script&gt;")
}

func TestServe500WithRequest(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	w := newTestResponseWriter(httptest.NewRecorder())
	r := httptest.NewRequest(http.MethodGet, "http://localhost:5000/popup.html", nil)
	Serve500WithRequest(w, r, "failed to serve file", errors.New("disk on fire"))

	requireErrorPage(t, w, content500)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "failed to serve file", entry.Message)
	require.Equal(t, "/popup.html", entry.Data["path"])
}
