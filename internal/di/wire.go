//go:build wireinject
// +build wireinject

package di

import (
	"MemeFlow/pkg/config"
	"MemeFlow/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Stores
		ProvideRegistry,
		ProvideLedger,
		ProvideCatalog,

		// Transports
		ProvideFlowAPIClient,
		ProvideStreamClient,

		// Use cases
		ProvideDispatcher,
		ProvideSession,

		// HTTP surface and application server
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
