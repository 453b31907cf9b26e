package serving

import (
	"net/http"

	"gitlab.com/ocr-extension/extension-server/internal/httperrors"
	"gitlab.com/ocr-extension/extension-server/internal/httpfs"
	"gitlab.com/ocr-extension/extension-server/metrics"
)

// DefaultIndexPath is served for requests to "/"
const DefaultIndexPath = "/manifest.json"

// Handler serves the files of a single serving root
type Handler struct {
	indexPath string
	reader    Reader
}

// New returns a Handler serving files below root. Requests for "/" are
// answered with indexPath.
func New(root, indexPath string) (*Handler, error) {
	fs, err := httpfs.NewFileSystem(root)
	if err != nil {
		return nil, err
	}

	if indexPath == "" {
		indexPath = DefaultIndexPath
	}

	return &Handler{
		indexPath: indexPath,
		reader: Reader{
			fs:             fs,
			fileSizeMetric: metrics.ServedFileSize,
		},
	}, nil
}

// ServeHTTP serves GET and HEAD requests from the serving root. Any other
// method is answered with 501.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httperrors.Serve501(w, r.Method)
		return
	}

	h.reader.serve(w, r, RewritePath(r.URL.Path, h.indexPath))
}
