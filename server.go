package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"gitlab.com/ocr-extension/extension-server/internal/netutil"
)

type listenerConfig struct {
	listener net.Listener
	limiter  *netutil.Limiter
	server   *http.Server
}

func (a *theApp) newServer(handler http.Handler) *http.Server {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,

		// "OPTIONS *" goes through the handler chain like any other request
		DisableGeneralOptionsHandler: true,
	}

	// every connection carries a single request, so with a limit of one
	// connection requests are answered strictly one after another
	server.SetKeepAlivesEnabled(false)

	return server
}

func listenAndServe(config listenerConfig) error {
	l := config.listener
	if config.limiter != nil {
		l = netutil.SharedLimitListener(l, config.limiter)
	}

	err := config.server.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func createListener(addr string) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %q: %w", addr, err)
	}

	return l, nil
}
