package serving

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"

	"github.com/prometheus/client_golang/prometheus"

	"gitlab.com/ocr-extension/extension-server/internal/httperrors"
	"gitlab.com/ocr-extension/extension-server/internal/logging"
)

// indexFiles are tried in order when a directory is requested
var indexFiles = []string{"index.html", "index.htm"}

var errNotRegularFile = fmt.Errorf("not a regular file: %w", fs.ErrPermission)

// Reader is a serving root access driver
type Reader struct {
	fs             http.FileSystem
	fileSizeMetric *prometheus.HistogramVec
}

func (reader *Reader) serve(w http.ResponseWriter, r *http.Request, urlPath string) {
	file, fi, err := reader.open(urlPath)
	if err != nil {
		reader.serveError(w, r, err)
		return
	}
	defer file.Close()

	if !fi.IsDir() {
		// "/manifest.json/" names a directory that does not exist
		if endsWithSlash(urlPath) {
			httperrors.Serve404(w)
			return
		}

		if !fi.Mode().IsRegular() {
			reader.serveError(w, r, errNotRegularFile)
			return
		}

		reader.serveFile(w, r, fi, file)
		return
	}

	if !endsWithSlash(urlPath) {
		http.Redirect(w, r, localRedirect(urlPath, r.URL.RawQuery), http.StatusMovedPermanently)
		return
	}

	if reader.tryIndex(w, r, urlPath) {
		return
	}

	reader.serveListing(w, r, urlPath, file)
}

// tryIndex serves the first index file found in the directory urlPath
func (reader *Reader) tryIndex(w http.ResponseWriter, r *http.Request, urlPath string) bool {
	for _, index := range indexFiles {
		file, fi, err := reader.open(path.Join(urlPath, index))
		if err != nil {
			continue
		}

		if !fi.Mode().IsRegular() {
			file.Close()
			continue
		}

		reader.serveFile(w, r, fi, file)
		file.Close()

		return true
	}

	return false
}

func (reader *Reader) open(urlPath string) (http.File, fs.FileInfo, error) {
	file, err := reader.fs.Open(urlPath)
	if err != nil {
		return nil, nil, err
	}

	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	return file, fi, nil
}

func (reader *Reader) serveFile(w http.ResponseWriter, r *http.Request, fi fs.FileInfo, file http.File) {
	contentType, err := detectContentType(fi.Name(), file)
	if err != nil {
		httperrors.Serve500WithRequest(w, r, "failed to detect content type", err)
		return
	}

	reader.fileSizeMetric.WithLabelValues(contentType).Observe(float64(fi.Size()))

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), file)
}

func (reader *Reader) serveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logging.LogRequest(r).WithError(err).Debug("file not found")
		httperrors.Serve404(w)
	case errors.Is(err, fs.ErrPermission):
		logging.LogRequest(r).WithError(err).Warn("file access denied")
		httperrors.Serve403(w)
	default:
		httperrors.Serve500WithRequest(w, r, "failed to open file", err)
	}
}
