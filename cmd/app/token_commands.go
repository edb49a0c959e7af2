package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/fs9io/identity/cmd/app/commands"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Issue a signed token for a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user-id",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "UUID of the user the token is issued for",
				},
				&cli.IntFlag{
					Name:    "ttl-seconds",
					Aliases: []string{"t"},
					Value:   0,
					Usage:   "Token lifetime in seconds (0 uses the configured default)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withTokenUseCase(ctx, func(useCase identityUseCase.TokenUseCase, logger *slog.Logger) error {
					return commands.RunIssueToken(
						ctx,
						useCase,
						logger,
						cmd.String("user-id"),
						cmd.Int("ttl-seconds"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "revoke-token",
			Usage: "Revoke a token before its natural expiry",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "The signed token to revoke",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withTokenUseCase(ctx, func(useCase identityUseCase.TokenUseCase, logger *slog.Logger) error {
					return commands.RunRevokeToken(ctx, useCase, logger, cmd.String("token"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "clean-revocations",
			Usage: "Delete revocation records for tokens expired beyond a threshold",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "days",
					Aliases: []string{"d"},
					Value:   30,
					Usage:   "Delete records whose token expired more than this many days ago",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many records would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withTokenUseCase(ctx, func(useCase identityUseCase.TokenUseCase, logger *slog.Logger) error {
					return commands.RunCleanRevocations(
						ctx,
						useCase,
						logger,
						commands.DefaultIO().Writer,
						cmd.Int("days"),
						cmd.Bool("dry-run"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
