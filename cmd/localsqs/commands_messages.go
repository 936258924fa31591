package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/wcharczuk/localsqs/internal/elasticmq"
)

var errStdinIsTerminal = errors.New("localsqs; no message body given and stdin is a terminal")

func snsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "sns",
		Usage: "Mimic an SNS message payload wrapping the message body",
	}
}

func delayFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "delay",
		Usage: "Seconds to delay delivery of the message",
	}
}

func (a *app) send() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send a message to a queue",
		ArgsUsage: "<queueName> [messageBody]",
		Description: "The message body is read from stdin when it is not given as an argument, e.g.\n\n" +
			"\techo '{\"id\":1}' | localsqs send orders",
		Flags: []cli.Flag{
			snsFlag(),
			delayFlag(),
			&cli.StringMapFlag{
				Name:  "attribute",
				Usage: "A string message attribute as key=value (repeatable)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			var body string
			if c.Args().Len() > 1 {
				body = c.Args().Get(1)
			} else if body, err = a.readStdin(); err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.SendMessage(ctx, args[0], elasticmq.SendMessageEntry{
				MessageBody:       elasticmq.TextBody(body),
				DelaySeconds:      int32(c.Int("delay")),
				MessageAttributes: elasticmq.StringAttributes(c.StringMap("attribute")),
			}, c.Bool("sns")))
		},
	}
}

func (a *app) sendBatch() *cli.Command {
	return &cli.Command{
		Name:      "sendBatch",
		Usage:     "Send messages to a queue in one request",
		ArgsUsage: "<queueName> <messageBody>...",
		Flags: []cli.Flag{
			snsFlag(),
			delayFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, bodies, err := requireArgsAndRest(c, "messageBody", "queueName")
			if err != nil {
				return err
			}
			entries := make([]elasticmq.SendMessageBatchEntry, 0, len(bodies))
			for _, body := range bodies {
				entries = append(entries, elasticmq.SendMessageBatchEntry{
					ID:           uuid.NewString(),
					MessageBody:  elasticmq.TextBody(body),
					DelaySeconds: int32(c.Int("delay")),
				})
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.SendMessageBatch(ctx, args[0], entries, c.Bool("sns")))
		},
	}
}

func (a *app) receive() *cli.Command {
	return &cli.Command{
		Name:      "receive",
		Usage:     "Receive messages from a queue",
		ArgsUsage: "<queueName>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-messages",
				Usage: "The maximum number of messages to return (1-10)",
			},
			&cli.IntFlag{
				Name:  "visibility-timeout",
				Usage: "Seconds received messages stay hidden",
			},
			&cli.IntFlag{
				Name:  "wait-time",
				Usage: "Seconds to wait for messages to arrive",
			},
			&cli.StringSliceFlag{
				Name:  "attribute-name",
				Usage: "A system attribute to return with each message (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "message-attribute-name",
				Usage: "A message attribute to return with each message, or All (repeatable)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			input := elasticmq.ReceiveMessage{
				MaxNumberOfMessages:   optionalInt32(c, "max-messages"),
				VisibilityTimeout:     optionalInt32(c, "visibility-timeout"),
				WaitTimeSeconds:       optionalInt32(c, "wait-time"),
				MessageAttributeNames: c.StringSlice("message-attribute-name"),
			}
			if names := c.StringSlice("attribute-name"); len(names) > 0 {
				input.AttributeNames = queueAttributeNames(names)
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.ReceiveMessage(ctx, args[0], input))
		},
	}
}

func (a *app) deleteMessage() *cli.Command {
	return &cli.Command{
		Name:      "deleteMessage",
		Usage:     "Delete a received message",
		ArgsUsage: "<queueName> <receiptHandle>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName", "receiptHandle")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.DeleteMessage(ctx, args[0], args[1]))
		},
	}
}

func (a *app) deleteBatch() *cli.Command {
	return &cli.Command{
		Name:      "deleteBatch",
		Usage:     "Delete received messages in one request",
		ArgsUsage: "<queueName> <receiptHandle>...",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, handles, err := requireArgsAndRest(c, "receiptHandle", "queueName")
			if err != nil {
				return err
			}
			entries := make([]types.DeleteMessageBatchRequestEntry, 0, len(handles))
			for _, handle := range handles {
				entries = append(entries, types.DeleteMessageBatchRequestEntry{
					Id:            aws.String(uuid.NewString()),
					ReceiptHandle: aws.String(handle),
				})
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.DeleteMessageBatch(ctx, args[0], entries))
		},
	}
}

func (a *app) changeMessageVisibility() *cli.Command {
	return &cli.Command{
		Name:      "changeMessageVisibility",
		Usage:     "Change how long a received message stays hidden",
		ArgsUsage: "<queueName> <receiptHandle> <visibilityTimeout>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName", "receiptHandle", "visibilityTimeout")
			if err != nil {
				return err
			}
			visibilityTimeout, err := strconv.ParseInt(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("localsqs; invalid visibilityTimeout %q: %w", args[2], err)
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.ChangeMessageVisibility(ctx, args[0], args[1], int32(visibilityTimeout)))
		},
	}
}

func (a *app) changeVisibilityBatch() *cli.Command {
	return &cli.Command{
		Name:      "changeVisibilityBatch",
		Usage:     "Change the visibility of received messages in one request",
		ArgsUsage: "<queueName> <receiptHandle>...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "visibility-timeout",
				Usage:    "Seconds the messages stay hidden",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, handles, err := requireArgsAndRest(c, "receiptHandle", "queueName")
			if err != nil {
				return err
			}
			entries := make([]types.ChangeMessageVisibilityBatchRequestEntry, 0, len(handles))
			for _, handle := range handles {
				entries = append(entries, types.ChangeMessageVisibilityBatchRequestEntry{
					Id:                aws.String(uuid.NewString()),
					ReceiptHandle:     aws.String(handle),
					VisibilityTimeout: int32(c.Int("visibility-timeout")),
				})
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.ChangeMessageVisibilityBatch(ctx, args[0], entries))
		},
	}
}

func (a *app) readStdin() (string, error) {
	if file, ok := a.stdin.(*os.File); ok {
		if isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()) {
			return "", errStdinIsTerminal
		}
	}
	contents, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("localsqs; reading message body from stdin: %w", err)
	}
	return strings.TrimRight(string(contents), "\r\n"), nil
}

func optionalInt32(c *cli.Command, name string) *int32 {
	if !c.IsSet(name) {
		return nil
	}
	return aws.Int32(int32(c.Int(name)))
}
