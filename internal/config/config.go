package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"

	"gitlab.com/ocr-extension/extension-server/internal/customheaders"
)

// Config stores all the config options relevant to the extension server.
type Config struct {
	General General
	Server  Server
	Log     Log
	Sentry  Sentry

	// ListenHTTPStrings contains the raw strings passed for listen-http. It is
	// used by appMain() to create listeners.
	ListenHTTPStrings MultiStringFlag
}

// General groups settings that are general to the extension server and can
// not be categorized under other head.
type General struct {
	RootDir        string
	IndexPath      string
	CORSPreflight  bool
	MaxConns       int
	MaxURILength   int
	MetricsAddress string
	StatusPath     string
	ShowVersion    bool

	CustomHeaders http.Header
}

// Server groups settings related to configuring the HTTP server
type Server struct {
	ReadHeaderTimeout time.Duration
}

// Log groups settings related to configuring logging
type Log struct {
	Format  string
	Verbose bool
}

// Sentry groups settings related to configuring Sentry
type Sentry struct {
	DSN         string
	Environment string
}

// executablePath is replaced in tests
var executablePath = os.Executable

// resolveRootDir returns the absolute serving root. An empty dir means the
// directory containing the running executable.
func resolveRootDir(dir string) (string, error) {
	if dir == "" {
		exe, err := executablePath()
		if err != nil {
			return "", fmt.Errorf("locating executable: %w", err)
		}

		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return "", fmt.Errorf("resolving executable: %w", err)
		}

		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving root dir: %w", err)
	}

	return abs, nil
}

func loadConfig() (*Config, error) {
	config := &Config{
		General: General{
			IndexPath:      *indexPath,
			CORSPreflight:  *corsPreflight,
			MaxConns:       *maxConns,
			MaxURILength:   *maxURILength,
			MetricsAddress: *metricsAddress,
			StatusPath:     *statusPath,
			ShowVersion:    *showVersion,
		},
		Server: Server{
			ReadHeaderTimeout: *serverReadHeaderTimeout,
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},

		// Actual listeners are created in appMain. We populate the raw
		// strings here so that they are available there
		ListenHTTPStrings: listenHTTP,
	}

	if config.ListenHTTPStrings.Len() == 0 {
		config.ListenHTTPStrings = MultiStringFlag{value: []string{DefaultListenHTTP}, separator: ","}
	}

	var err error

	if config.General.RootDir, err = resolveRootDir(*rootDir); err != nil {
		return nil, err
	}

	if config.General.CustomHeaders, err = customheaders.ParseHeaderString(header.Split()); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig logs the effective configuration at debug level
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"cors-preflight":             config.General.CORSPreflight,
		"default-config-filename":    flag.DefaultConfigFlagname,
		"header":                     header.String(),
		"index-path":                 config.General.IndexPath,
		"listen-http":                config.ListenHTTPStrings.String(),
		"log-format":                 config.Log.Format,
		"max-conns":                  config.General.MaxConns,
		"max-uri-length":             config.General.MaxURILength,
		"metrics-address":            config.General.MetricsAddress,
		"root-dir":                   config.General.RootDir,
		"server-read-header-timeout": config.Server.ReadHeaderTimeout,
		"status-path":                config.General.StatusPath,
	}).Debug("Start extension server with configuration")
}

// LoadConfig parses configuration settings passed as command line arguments or
// via config file, and populates a Config object with those values
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
