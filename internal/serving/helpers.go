package serving

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

func endsWithSlash(path string) bool {
	return strings.HasSuffix(path, "/")
}

// localRedirect gives a Location relative to the current host, keeping the
// query of the original request
func localRedirect(urlPath, rawQuery string) string {
	target := urlPath + "/"
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	return target
}

// Detect file's content-type either by extension or mime-sniffing.
// Implementation is adapted from Golang's `http.serveContent()`
// See https://github.com/golang/go/blob/902fc114272978a40d2e65c2510a18e870077559/src/net/http/fs.go#L194
func detectContentType(name string, file io.ReadSeeker) (string, error) {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType != "" {
		return contentType, nil
	}

	var buf [512]byte

	// Using `io.ReadFull()` because `file.Read()` may be chunked.
	// Ignoring errors because we don't care if the 512 bytes cannot be read.
	n, _ := io.ReadFull(file, buf[:])
	contentType = http.DetectContentType(buf[:n])

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return contentType, nil
}
