//go:build wireinject
// +build wireinject

package di

import (
	"ChurnScope/pkg/config"
	"ChurnScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Model artifact
		ProvideArtifactSource,

		// Transport
		ProvideRenderer,
		ProvideRateLimiter,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
