package config

import (
	"github.com/namsral/flag"
)

const (
	// DefaultListenHTTP is used when no -listen-http address is given.
	DefaultListenHTTP = ":5000"

	// DefaultMaxURILength matches the request line limit of common HTTP/1 servers
	DefaultMaxURILength = 65536
)

var (
	rootDir       = flag.String("root-dir", "", "The directory the extension files are served from (defaults to the directory holding the executable, set it when using go run)")
	indexPath     = flag.String("index-path", "/manifest.json", "The file served for requests to the root path")
	corsPreflight = flag.Bool("cors-preflight", false, "Answer CORS preflight (OPTIONS) requests instead of rejecting them")

	maxConns     = flag.Int("max-conns", 1, "Limit on the number of concurrent connections to the HTTP listeners, 0 for no limit")
	maxURILength = flag.Int("max-uri-length", DefaultMaxURILength, "Limit the length of URI, 0 for unlimited.")

	statusPath        = flag.String("status-path", "", "The url path for a status page, e.g., /@status")
	metricsAddress    = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	sentryDSN         = flag.String("sentry-dsn", "", "The address for sending sentry crash reporting to")
	sentryEnvironment = flag.String("sentry-environment", "", "The environment for sentry crash reporting")
	logFormat         = flag.String("log-format", "text", "The log output format: 'text' or 'json'")
	logVerbose        = flag.Bool("log-verbose", false, "Verbose logging")

	// HTTP server timeouts
	serverReadHeaderTimeout = flag.Duration("server-read-header-timeout", 0, "ReadHeaderTimeout is the amount of time allowed to read request headers. A zero or negative value means there will be no timeout.")

	showVersion = flag.Bool("version", false, "Show version")

	// See initFlags()
	listenHTTP = MultiStringFlag{separator: ","}

	header = MultiStringFlag{separator: ";;"}
)

// initFlags will be called from LoadConfig
func initFlags() {
	flag.Var(&listenHTTP, "listen-http", "The address(es) to listen on for HTTP requests (default \""+DefaultListenHTTP+"\")")
	flag.Var(&header, "header", "The additional http header(s) that should be send to the client")

	// read from -config=/path/to/extension-server-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	flag.Parse()
}
