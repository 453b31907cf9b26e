// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on https://golang.org/src/net/http/fs.go

package httpfs

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gitlab.com/gitlab-org/labkit/log"
)

var (
	errInvalidChar = errors.New("http: invalid character in file path")
)

// rootFileSystem implements the http.FileSystem interface for a single
// serving root. Names are resolved relative to the root and can never
// point above it.
type rootFileSystem struct {
	root string
}

// NewFileSystem creates an http.FileSystem serving files below root
func NewFileSystem(root string) (http.FileSystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &rootFileSystem{root: abs}, nil
}

// Open a file by its slash separated name relative to the serving root
func (p *rootFileSystem) Open(name string) (http.File, error) {
	// taken from http.Dir#open https://golang.org/src/net/http/fs.go?s=2108:2152#L70
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		return nil, errInvalidChar
	}

	fullPath := filepath.Join(p.root, filepath.FromSlash(path.Clean("/"+name)))

	if fullPath != p.root && !strings.HasPrefix(fullPath, p.root+string(filepath.Separator)) {
		log.WithError(os.ErrPermission).Errorf("requested filepath %q not in root %q", fullPath, p.root)

		// os.ErrPermission is converted to http.StatusForbidden
		return nil, os.ErrPermission
	}

	return os.Open(fullPath)
}
