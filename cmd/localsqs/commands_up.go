package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wcharczuk/localsqs/internal/docker"
)

func (a *app) up() *cli.Command {
	return &cli.Command{
		Name:  "up",
		Usage: "Run ElasticMQ in Docker",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "api-port",
				Usage: "The REST-SQS API port for ElasticMQ",
				Value: docker.ContainerAPIPort,
			},
			&cli.IntFlag{
				Name:  "ui-port",
				Usage: "The UI port for ElasticMQ",
				Value: docker.ContainerUIPort,
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Forcefully kill any process running on the ElasticMQ ports before starting",
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "The ElasticMQ image to run",
				Value: docker.DefaultImage,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			runtime := a.runtime()
			if err := runtime.Installed(ctx); err != nil {
				return err
			}
			options := docker.RunOptions{
				APIPort: int(c.Int("api-port")),
				UIPort:  int(c.Int("ui-port")),
				Image:   c.String("image"),
			}
			if c.Bool("force") {
				fmt.Fprintln(a.stdout, "Force mode enabled. Checking and terminating processes on specified ports if any are running...")
				for _, port := range []int{options.APIPort, options.UIPort} {
					if err := runtime.FreePort(ctx, port); err != nil {
						return err
					}
				}
			}
			return runtime.Run(ctx, options)
		},
	}
}
