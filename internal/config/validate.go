package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"gitlab.com/ocr-extension/extension-server/internal/customheaders"
)

var (
	ErrNoListener         = errors.New("no listener defined, please specify at least one --listen-* flag")
	ErrRootDirNotDir      = errors.New("root-dir must be an existing directory")
	ErrInvalidIndexPath   = errors.New("index-path must start with /")
	ErrInvalidStatusPath  = errors.New("status-path must start with /")
	ErrNegativeMaxConns   = errors.New("max-conns must be greater than or equal to 0")
	ErrNegativeURILength  = errors.New("max-uri-length must be greater than or equal to 0")
	ErrInvalidLogFormat   = errors.New("log-format must be either 'text' or 'json'")
	ErrCORSHeaderOverride = errors.New("header cannot redefine the CORS headers")
)

func validateConfig(config *Config) error {
	var result *multierror.Error

	if err := validateListeners(config); err != nil {
		result = multierror.Append(result, err)
	}

	if err := validateRootDir(config.General.RootDir); err != nil {
		result = multierror.Append(result, err)
	}

	if !strings.HasPrefix(config.General.IndexPath, "/") {
		result = multierror.Append(result, ErrInvalidIndexPath)
	}

	if config.General.StatusPath != "" && !strings.HasPrefix(config.General.StatusPath, "/") {
		result = multierror.Append(result, ErrInvalidStatusPath)
	}

	if config.General.MaxConns < 0 {
		result = multierror.Append(result, ErrNegativeMaxConns)
	}

	if config.General.MaxURILength < 0 {
		result = multierror.Append(result, ErrNegativeURILength)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		result = multierror.Append(result, ErrInvalidLogFormat)
	}

	if err := validateCustomHeaders(config.General.CustomHeaders); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func validateListeners(config *Config) error {
	for _, addr := range config.ListenHTTPStrings.Split() {
		if addr != "" {
			return nil
		}
	}

	return ErrNoListener
}

func validateCustomHeaders(headers http.Header) error {
	cors := customheaders.CORS()

	for k := range headers {
		if _, ok := cors[k]; ok {
			return fmt.Errorf("%w: %s", ErrCORSHeaderOverride, k)
		}
	}

	return nil
}

func validateRootDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRootDirNotDir, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", ErrRootDirNotDir, dir)
	}

	return nil
}
