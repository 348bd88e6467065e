package di

import (
	"MemeFlow/internal/catalog"
	"MemeFlow/internal/domain/repository"
	"MemeFlow/internal/handler/api"
	"MemeFlow/internal/ledger"
	"MemeFlow/internal/registry"
	"MemeFlow/internal/service/flowapi"
	"MemeFlow/internal/service/stream"
	"MemeFlow/internal/usecase"
	"MemeFlow/pkg/config"
	xhttp "MemeFlow/pkg/http"
	applogger "MemeFlow/pkg/logger"
	"MemeFlow/pkg/metrics"
	"MemeFlow/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRegistry creates the watch registry.
func ProvideRegistry() *registry.Registry {
	return registry.New()
}

// ProvideLedger creates the bounded alert ledger.
func ProvideLedger() *ledger.Ledger {
	return ledger.New()
}

// ProvideFlowAPIClient creates the upstream REST client.
func ProvideFlowAPIClient(cfg *config.Config) *flowapi.Client {
	return flowapi.New(cfg.Upstream.BaseURL, xhttp.NewClient(
		xhttp.WithTimeout(cfg.Upstream.RequestTimeout),
	))
}

// ProvideCatalog creates the contract catalog over the REST client.
func ProvideCatalog(cfg *config.Config, client *flowapi.Client) *catalog.Catalog {
	return catalog.New(catalog.Config{
		NewLimit: cfg.Catalog.NewLimit,
		AllLimit: cfg.Catalog.AllLimit,
	}, client)
}

// ProvideStreamClient creates the push stream transport.
func ProvideStreamClient(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *stream.Client {
	return stream.New(stream.Config{
		URL:              cfg.Upstream.WebSocketURL,
		ReconnectDelay:   cfg.Stream.ReconnectDelay,
		HandshakeTimeout: cfg.Stream.HandshakeTimeout,
	}, l, m)
}

// ProvideDispatcher creates the push frame dispatcher.
func ProvideDispatcher(
	reg *registry.Registry,
	led *ledger.Ledger,
	cat *catalog.Catalog,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.Dispatcher {
	return usecase.NewDispatcher(reg, led, cat, l, m)
}

// ProvideSession creates the dashboard session.
func ProvideSession(
	cfg *config.Config,
	reg *registry.Registry,
	led *ledger.Ledger,
	cat *catalog.Catalog,
	str *stream.Client,
	client *flowapi.Client,
	disp *usecase.Dispatcher,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.Session {
	return usecase.NewSession(
		usecase.SessionConfig{RefreshInterval: cfg.Catalog.RefreshInterval},
		reg, led, cat, str, client, disp, l, m,
	)
}

// ProvideHTTPServer creates the Echo server with the dashboard routes.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, session *usecase.Session) *xhttp.Server {
	handler := api.NewDashboardHandler(l, session)
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	}
	if !cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else if cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}
	return xhttp.NewServer(handler, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, session *usecase.Session, httpServer *xhttp.Server) *server.App {
	return server.New(cfg, l, session, httpServer)
}
