package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/wcharczuk/localsqs/internal/docker"
	"github.com/wcharczuk/localsqs/internal/elasticmq"
)

func newApp() *app {
	return &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: slog.Default(),
	}
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	httpClient     *http.Client
	runtimeOptions []docker.RuntimeOption
}

// run executes the command line and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if err := a.root().Run(ctx, args); err != nil {
		a.report(err)
		return 1
	}
	return 0
}

func (a *app) report(err error) {
	red := color.New(color.FgRed)
	var missing *MissingArgumentsError
	var apiErr *elasticmq.Error
	switch {
	case errors.As(err, &missing):
		red.Fprintf(a.stderr, "Error: %s\n", missing.Message())
	case errors.Is(err, docker.ErrNotInstalled):
		red.Fprintln(a.stderr, "Error: Docker is not installed. Please install Docker to use this command.")
	case errors.As(err, &apiErr):
		red.Fprintf(a.stderr, "Error with ElasticMQ API request: %v\n", err)
	default:
		red.Fprintf(a.stderr, "Error: %v\n", err)
	}
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:      "localsqs",
		Usage:     "Drive a local ElasticMQ with SQS api calls",
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "The ElasticMQ api url",
				Value:   elasticmq.DefaultEndpoint,
				Sources: cli.EnvVars("LOCALSQS_API"),
			},
			&cli.StringFlag{
				Name: "log-level",
				Usage: fmt.Sprintf(
					"The log level (%s>%s>%s>%s) (not case sensitive, from least to most restrictive)",
					slog.LevelDebug.String(),
					slog.LevelInfo.String(),
					slog.LevelWarn.String(),
					slog.LevelError.String(),
				),
				Value: slog.LevelWarn.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "The log format (text|json)",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log at debug level, including every http request",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.createQueue(),
			a.deleteQueue(),
			a.listQueues(),
			a.purgeQueue(),
			a.getQueueURL(),
			a.getQueueAttributes(),
			a.setQueueAttributes(),
			a.tagQueue(),
			a.untagQueue(),
			a.addPermission(),
			a.removePermission(),
			a.send(),
			a.sendBatch(),
			a.receive(),
			a.deleteMessage(),
			a.deleteBatch(),
			a.changeMessageVisibility(),
			a.changeVisibilityBatch(),
			a.startMessageMoveTask(),
			a.cancelMessageMoveTask(),
			a.listMessageMoveTasks(),
			a.up(),
		},
		// attribute and tag values such as RedrivePolicy are json and contain commas
		DisableSliceFlagSeparator: true,
	}
}

func (a *app) setup(ctx context.Context, c *cli.Command) (context.Context, error) {
	logLeveler := new(slog.LevelVar)
	if err := logLeveler.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return ctx, fmt.Errorf("invalid log level: %w", err)
	}
	if c.Bool("debug") {
		logLeveler.Set(slog.LevelDebug)
	}
	options := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLeveler,
	}
	switch c.String("log-format") {
	case "json":
		a.logger = slog.New(slog.NewJSONHandler(a.stderr, options))
	case "text":
		a.logger = slog.New(slog.NewTextHandler(a.stderr, options))
	default:
		return ctx, fmt.Errorf("invalid log format: %q", c.String("log-format"))
	}
	if c.IsSet("api") {
		fmt.Fprintf(a.stderr, "ElasticMQ API URL set to: %s\n", c.String("api"))
	}
	return ctx, nil
}

func (a *app) client(c *cli.Command) (*elasticmq.Client, error) {
	options := []elasticmq.ClientOption{
		elasticmq.OptLogger(a.logger),
	}
	if a.httpClient != nil {
		options = append(options, elasticmq.OptHTTPClient(a.httpClient))
	}
	return elasticmq.NewClient(c.String("api"), options...)
}

func (a *app) runtime() *docker.Runtime {
	options := append([]docker.RuntimeOption{
		docker.OptOutput(a.stdout, a.stderr),
		docker.OptLogger(a.logger),
	}, a.runtimeOptions...)
	return docker.NewRuntime(options...)
}

// done prints a successful response body.
func (a *app) done(res *elasticmq.Response, err error) error {
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprint(a.stdout, "Done: ")
	fmt.Fprintln(a.stdout, res.String())
	return nil
}
