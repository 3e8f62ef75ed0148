package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/docgate/cmd/app/commands"
	"github.com/allisson/docgate/internal/app"
	"github.com/allisson/docgate/internal/config"
	userDomain "github.com/allisson/docgate/internal/user/domain"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a staff user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login name",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Login password",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Optional contact email",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Value: false,
					Usage: "Grant access to the administration routes",
				},
				&cli.BoolFlag{
					Name:  "no-access",
					Value: false,
					Usage: "Create the user without login rights",
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

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				input := &userDomain.CreateUserInput{
					Username:  cmd.String("username"),
					Password:  cmd.String("password"),
					HasAccess: !cmd.Bool("no-access"),
					IsAdmin:   cmd.Bool("admin"),
				}
				if email := cmd.String("email"); email != "" {
					input.Email = &email
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					input,
					cmd.String("format"),
				)
			},
		},
	}
}
