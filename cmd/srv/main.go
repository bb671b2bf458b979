package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	app := cli.NewApp()
	app.Name = "HabitQuest"
	app.Usage = "Gamified habit tracking backend"
	app.Action = cli.ShowAppHelp
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Description: `The main service: authentication, session state, catalog, leaderboard.`,
		},
		{
			Action:      server.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start the subscription event worker",
			Description: `Consumes subscription lifecycle facts from the payment collaborator.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}
