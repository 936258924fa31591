package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *app) startMessageMoveTask() *cli.Command {
	return &cli.Command{
		Name:      "startMessageMoveTask",
		Usage:     "Move messages out of a dead letter queue",
		ArgsUsage: "<sourceArn> <destinationArn>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "sourceArn", "destinationArn")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.StartMessageMoveTask(ctx, args[0], args[1]))
		},
	}
}

func (a *app) cancelMessageMoveTask() *cli.Command {
	return &cli.Command{
		Name:      "cancelMessageMoveTask",
		Usage:     "Cancel a running message move task",
		ArgsUsage: "<taskHandle>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "taskHandle")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.CancelMessageMoveTask(ctx, args[0]))
		},
	}
}

func (a *app) listMessageMoveTasks() *cli.Command {
	return &cli.Command{
		Name:  "listMessageMoveTasks",
		Usage: "List message move tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source-arn",
				Usage: "Only list tasks moving messages out of this queue",
			},
			&cli.StringFlag{
				Name:  "destination-arn",
				Usage: "Only list tasks moving messages into this queue",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.ListMessageMoveTasks(ctx, c.String("source-arn"), c.String("destination-arn")))
		},
	}
}
