package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/go-mimedb"

	cfg "gitlab.com/ocr-extension/extension-server/internal/config"
	"gitlab.com/ocr-extension/extension-server/internal/errortracking"
	"gitlab.com/ocr-extension/extension-server/internal/logging"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func initErrorReporting(sentryDSN, sentryEnvironment string) {
	err := errortracking.Configure(sentryDSN, sentryEnvironment, fmt.Sprintf("%s-%s", VERSION, REVISION))
	if err != nil {
		log.WithError(err).Warn("Failed to initialize error reporting")
	}
}

func appMain() {
	config, err := cfg.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(config.General.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(config.Log.Format, config.Log.Verbose); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("Extension files server")

	cfg.LogConfig(config)

	initErrorReporting(config.Sentry.DSN, config.Sentry.Environment)

	if err := mimedb.LoadTypes(); err != nil {
		log.WithError(err).Warn("Loading extended MIME database failed")
	}

	a, err := newApp(config)
	if err != nil {
		capturingFatal(err)
	}

	logServingRoot(config.General.RootDir)

	printBanner(os.Stdout, a.listeners[0].Addr())

	if err := a.Run(context.Background()); err != nil {
		capturingFatal(err)
	}
}

// createAppListeners binds every HTTP listen address. Listeners bound before
// a failure are closed again.
func createAppListeners(config *cfg.Config) ([]net.Listener, error) {
	var listeners []net.Listener

	for _, addr := range config.ListenHTTPStrings.Split() {
		l, err := createListener(addr)
		if err != nil {
			closeAll(listeners)
			return nil, err
		}

		log.WithFields(log.Fields{
			"listener": l.Addr().String(),
		}).Debug("Set up HTTP listener")

		listeners = append(listeners, l)
	}

	return listeners, nil
}

func createMetricsListener(config *cfg.Config) (net.Listener, error) {
	addr := config.General.MetricsAddress
	if addr == "" {
		return nil, nil
	}

	l, err := createListener(addr)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"listener": l.Addr().String(),
	}).Debug("Set up metrics listener")

	return l, nil
}

func closeAll(listeners []net.Listener) {
	for _, l := range listeners {
		l.Close()
	}
}

// logServingRoot reports the resolved root so a wrong default, like the
// temporary build dir of go run, is visible at startup
func logServingRoot(root string) {
	log.WithField("root_dir", root).Info("Serving extension files")
}

// printBanner tells the developer where the extension files can be fetched.
// The port is taken from the bound address so ":0" reports the real port.
func printBanner(w io.Writer, addr net.Addr) {
	port := addr.String()
	if _, p, err := net.SplitHostPort(port); err == nil {
		port = p
	}

	base := "http://localhost:" + port

	fmt.Fprintf(w, "Extension files server running at %s\n", base)
	fmt.Fprintln(w, "You can download the extension files from this server for testing")
	fmt.Fprintf(w, "Manifest: %s/manifest.json\n", base)
	fmt.Fprintf(w, "Options: %s/options.html\n", base)
	fmt.Fprintf(w, "Popup: %s/popup.html\n", base)
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func main() {
	log.SetOutput(os.Stderr)

	appMain()
}
