package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	"golang.org/x/sync/errgroup"

	cfg "gitlab.com/ocr-extension/extension-server/internal/config"
	"gitlab.com/ocr-extension/extension-server/internal/customheaders"
	"gitlab.com/ocr-extension/extension-server/internal/handlers"
	"gitlab.com/ocr-extension/extension-server/internal/healthcheck"
	"gitlab.com/ocr-extension/extension-server/internal/logging"
	"gitlab.com/ocr-extension/extension-server/internal/netutil"
	"gitlab.com/ocr-extension/extension-server/internal/rejectmethods"
	"gitlab.com/ocr-extension/extension-server/internal/serving"
	"gitlab.com/ocr-extension/extension-server/internal/urilimiter"
	"gitlab.com/ocr-extension/extension-server/metrics"
)

type theApp struct {
	config          *cfg.Config
	listeners       []net.Listener
	metricsListener net.Listener
}

// newApp binds the configured listeners. Nothing is served until Run.
func newApp(config *cfg.Config) (*theApp, error) {
	listeners, err := createAppListeners(config)
	if err != nil {
		return nil, err
	}

	metricsListener, err := createMetricsListener(config)
	if err != nil {
		closeAll(listeners)
		return nil, err
	}

	return &theApp{
		config:          config,
		listeners:       listeners,
		metricsListener: metricsListener,
	}, nil
}

// buildHandlerPipeline returns the request handler. The custom headers
// middleware is outermost so error responses of every inner layer carry the
// CORS headers too.
func (a *theApp) buildHandlerPipeline() (http.Handler, error) {
	responder, err := serving.New(a.config.General.RootDir, a.config.General.IndexPath)
	if err != nil {
		return nil, err
	}

	handler := handlers.CorsHandler(a.config, responder)
	handler = healthcheck.NewMiddleware(handler, a.config.General.StatusPath)
	handler = urilimiter.NewMiddleware(handler, a.config.General.MaxURILength)
	handler = rejectmethods.NewMiddleware(handler)
	handler = metrics.HTTPMetrics(handler)

	handler, err = logging.BasicAccessLogger(handler, a.config.Log.Format)
	if err != nil {
		return nil, err
	}

	handler = correlation.InjectCorrelationID(handler)
	handler = ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(log.StandardLogger()),
		ghandlers.PrintRecoveryStack(true),
	)(handler)

	headers := customheaders.Merge(customheaders.CORS(), a.config.General.CustomHeaders)
	handler = customheaders.NewMiddleware(handler, headers)

	return handler, nil
}

func (a *theApp) limiter() *netutil.Limiter {
	if a.config.General.MaxConns <= 0 {
		return nil
	}

	return netutil.NewLimiterWithMetrics(
		a.config.General.MaxConns,
		metrics.LimitListenerMaxConns,
		metrics.LimitListenerConcurrentConns,
		metrics.LimitListenerWaitingConns,
	)
}

// Run serves on every bound listener until ctx is cancelled or a listener
// fails. The first failure stops the remaining listeners and is returned.
func (a *theApp) Run(ctx context.Context) error {
	handler, err := a.buildHandlerPipeline()
	if err != nil {
		closeAll(a.listeners)
		if a.metricsListener != nil {
			a.metricsListener.Close()
		}
		return fmt.Errorf("unable to configure pipeline: %w", err)
	}

	// the limiter is shared, the connection limit spans all HTTP listeners
	limiter := a.limiter()

	var configs []listenerConfig
	for _, l := range a.listeners {
		configs = append(configs, listenerConfig{
			listener: l,
			limiter:  limiter,
			server:   a.newServer(handler),
		})
	}

	if a.metricsListener != nil {
		configs = append(configs, listenerConfig{
			listener: a.metricsListener,
			server:   a.newServer(promhttp.Handler()),
		})
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, config := range configs {
		config := config
		g.Go(func() error {
			return listenAndServe(config)
		})
	}

	g.Go(func() error {
		<-ctx.Done()

		for _, config := range configs {
			config.server.Close()
		}

		return nil
	})

	return g.Wait()
}
