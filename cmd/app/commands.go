package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/fs9io/identity/internal/app"
	"github.com/fs9io/identity/internal/config"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getDirectoryCommands()...)
	cmds = append(cmds, getTokenCommands()...)
	return cmds
}

// withContainer loads configuration, builds the DI container, runs the given
// function, and shuts the container down afterwards.
func withContainer(ctx context.Context, fn func(container *app.Container, logger *slog.Logger) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer func() {
		if err := container.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	return fn(container, logger)
}

// withTokenUseCase runs the given function with an initialized token use case.
func withTokenUseCase(ctx context.Context, fn func(useCase identityUseCase.TokenUseCase, logger *slog.Logger) error) error {
	return withContainer(ctx, func(container *app.Container, logger *slog.Logger) error {
		useCase, err := container.TokenUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize token use case: %w", err)
		}
		return fn(useCase, logger)
	})
}
