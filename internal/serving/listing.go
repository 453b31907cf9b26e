package serving

import (
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"gitlab.com/ocr-extension/extension-server/internal/httperrors"
	"gitlab.com/ocr-extension/extension-server/internal/logging"
	"gitlab.com/ocr-extension/extension-server/metrics"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE HTML>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Directory listing for {{.Path}}</title>
</head>
<body>
<h1>Directory listing for {{.Path}}</h1>
<hr>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a></li>
{{- end}}
</ul>
<hr>
</body>
</html>
`))

type listingEntry struct {
	Name string
	Href string
}

type listing struct {
	Path    string
	Entries []listingEntry
}

func newListing(urlPath string, infos []fs.FileInfo) listing {
	sort.Slice(infos, func(i, j int) bool {
		return strings.ToLower(infos[i].Name()) < strings.ToLower(infos[j].Name())
	})

	l := listing{Path: urlPath, Entries: make([]listingEntry, 0, len(infos))}
	for _, fi := range infos {
		name := fi.Name()
		switch {
		case fi.IsDir():
			name += "/"
		case fi.Mode()&fs.ModeSymlink != 0:
			name += "@"
		}

		// url.URL escapes names such as "a:b" that would otherwise parse as a scheme
		href := (&url.URL{Path: fi.Name()}).String()
		if fi.IsDir() {
			href += "/"
		}

		l.Entries = append(l.Entries, listingEntry{Name: name, Href: href})
	}

	return l
}

func (reader *Reader) serveListing(w http.ResponseWriter, r *http.Request, urlPath string, dir http.File) {
	infos, err := dir.Readdir(-1)
	if err != nil {
		httperrors.Serve500WithRequest(w, r, "failed to list directory", err)
		return
	}

	metrics.DirectoryListings.Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := listingTemplate.Execute(w, newListing(urlPath, infos)); err != nil {
		logging.LogRequest(r).WithError(err).Error("failed to render directory listing")
	}
}
