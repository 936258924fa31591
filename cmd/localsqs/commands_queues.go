package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/urfave/cli/v3"
)

func (a *app) createQueue() *cli.Command {
	return &cli.Command{
		Name:      "createQueue",
		Usage:     "Create a new SQS queue",
		ArgsUsage: "<queueName>",
		Flags: []cli.Flag{
			&cli.StringMapFlag{
				Name:  "attribute",
				Usage: "A queue attribute as key=value, e.g. VisibilityTimeout=30",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.CreateQueue(ctx, args[0], c.StringMap("attribute")))
		},
	}
}

func (a *app) deleteQueue() *cli.Command {
	return &cli.Command{
		Name:      "deleteQueue",
		Usage:     "Delete a queue",
		ArgsUsage: "<queueName>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.DeleteQueue(ctx, args[0]))
		},
	}
}

func (a *app) listQueues() *cli.Command {
	return &cli.Command{
		Name:      "listQueues",
		Usage:     "List all queues",
		ArgsUsage: "[namePrefix]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "namePrefix",
				Usage: "Optional queue name prefix",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			prefix := c.String("namePrefix")
			if prefix == "" {
				prefix = c.Args().First()
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.ListQueues(ctx, prefix))
		},
	}
}

func (a *app) purgeQueue() *cli.Command {
	return &cli.Command{
		Name:      "purgeQueue",
		Usage:     "Purge all messages from a queue",
		ArgsUsage: "<queueName>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.PurgeQueue(ctx, args[0]))
		},
	}
}

func (a *app) getQueueURL() *cli.Command {
	return &cli.Command{
		Name:      "getQueueUrl",
		Usage:     "Get the URL for a queue",
		ArgsUsage: "<queueName>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.GetQueueURL(ctx, args[0]))
		},
	}
}

func (a *app) getQueueAttributes() *cli.Command {
	return &cli.Command{
		Name:      "getQueueAttributes",
		Usage:     "Get attributes of a queue",
		ArgsUsage: "<queueName>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "attribute-name",
				Usage: "An attribute to return, e.g. All or ApproximateNumberOfMessages (repeatable)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.GetQueueAttributes(ctx, args[0], queueAttributeNames(c.StringSlice("attribute-name"))...))
		},
	}
}

func (a *app) setQueueAttributes() *cli.Command {
	return &cli.Command{
		Name:      "setQueueAttributes",
		Usage:     "Set attributes of a queue",
		ArgsUsage: "<queueName>",
		Flags: []cli.Flag{
			&cli.StringMapFlag{
				Name:     "attribute",
				Usage:    "A queue attribute as key=value (repeatable)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.SetQueueAttributes(ctx, args[0], c.StringMap("attribute")))
		},
	}
}

func (a *app) tagQueue() *cli.Command {
	return &cli.Command{
		Name:      "tagQueue",
		Usage:     "Add tags to a queue",
		ArgsUsage: "<queueName>",
		Flags: []cli.Flag{
			&cli.StringMapFlag{
				Name:     "tag",
				Usage:    "A tag as key=value (repeatable)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.TagQueue(ctx, args[0], c.StringMap("tag")))
		},
	}
}

func (a *app) untagQueue() *cli.Command {
	return &cli.Command{
		Name:      "untagQueue",
		Usage:     "Remove tags from a queue",
		ArgsUsage: "<queueName> <tagKey>...",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, tagKeys, err := requireArgsAndRest(c, "tagKey", "queueName")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.UntagQueue(ctx, args[0], tagKeys))
		},
	}
}

func (a *app) addPermission() *cli.Command {
	return &cli.Command{
		Name:      "addPermission",
		Usage:     "Allow accounts to call actions on a queue",
		ArgsUsage: "<queueName> <label>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "account-id",
				Usage:    "An account id to grant (repeatable)",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "action",
				Usage:    "An action to grant, e.g. SendMessage (repeatable)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName", "label")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.AddPermission(ctx, args[0], args[1], c.StringSlice("account-id"), c.StringSlice("action")))
		},
	}
}

func (a *app) removePermission() *cli.Command {
	return &cli.Command{
		Name:      "removePermission",
		Usage:     "Remove a permission from a queue",
		ArgsUsage: "<queueName> <label>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args, err := requireArgs(c, "queueName", "label")
			if err != nil {
				return err
			}
			client, err := a.client(c)
			if err != nil {
				return err
			}
			return a.done(client.RemovePermission(ctx, args[0], args[1]))
		},
	}
}

func queueAttributeNames(names []string) []types.QueueAttributeName {
	output := make([]types.QueueAttributeName, 0, len(names))
	for _, name := range names {
		output = append(output, types.QueueAttributeName(name))
	}
	return output
}
