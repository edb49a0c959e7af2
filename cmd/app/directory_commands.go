package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/fs9io/identity/cmd/app/commands"
	"github.com/fs9io/identity/internal/app"
)

func getDirectoryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-namespace",
			Usage: "Create a new namespace",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Unique namespace name (lowercase letters, digits, '-', '_')",
				},
				&cli.StringFlag{
					Name:    "description",
					Aliases: []string{"d"},
					Value:   "",
					Usage:   "Human-readable namespace description",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container, logger *slog.Logger) error {
					useCase, err := container.NamespaceUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize namespace use case: %w", err)
					}
					return commands.RunCreateNamespace(
						ctx,
						useCase,
						logger,
						cmd.String("name"),
						cmd.String("description"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "delete-namespace",
			Usage: "Delete a namespace and all its users",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Name of the namespace to delete",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container, logger *slog.Logger) error {
					useCase, err := container.NamespaceUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize namespace use case: %w", err)
					}
					return commands.RunDeleteNamespace(ctx, useCase, logger, cmd.String("name"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "create-user",
			Usage: "Create a new directory user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Unique username",
				},
				&cli.StringFlag{
					Name:    "namespace",
					Aliases: []string{"ns"},
					Value:   "default",
					Usage:   "Namespace the user belongs to",
				},
				&cli.StringFlag{
					Name:     "roles",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Comma-separated roles (read-only, read-write, admin)",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the user can receive tokens immediately",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container, logger *slog.Logger) error {
					useCase, err := container.UserUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize user use case: %w", err)
					}
					return commands.RunCreateUser(
						ctx,
						useCase,
						logger,
						cmd.String("username"),
						cmd.String("namespace"),
						cmd.String("roles"),
						cmd.Bool("active"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
