//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Alias1177/CoinCast/internal/config"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return &App{}, nil
}
