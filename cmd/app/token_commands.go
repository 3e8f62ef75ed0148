package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/docgate/cmd/app/commands"
	"github.com/allisson/docgate/internal/app"
	"github.com/allisson/docgate/internal/config"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-tokens",
			Usage: "Issue single-use generation tokens",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "count",
					Aliases: []string{"c"},
					Value:   1,
					Usage:   "How many tokens to issue (at most 50 per call)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.GenerationTokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueTokens(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("count")),
					cmd.String("format"),
				)
			},
		},
	}
}
