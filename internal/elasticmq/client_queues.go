package elasticmq

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// CreateQueue creates a queue, optionally with attributes.
func (c *Client) CreateQueue(ctx context.Context, queueName string, attributes map[string]string) (*Response, error) {
	return c.Do(ctx, "/", CreateQueue{
		QueueName:  queueName,
		Attributes: attributes,
	})
}

// DeleteQueue deletes a queue.
func (c *Client) DeleteQueue(ctx context.Context, queueName string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), DeleteQueue{})
}

// ListQueues lists queues, optionally only those whose names start with a prefix.
func (c *Client) ListQueues(ctx context.Context, namePrefix string) (*Response, error) {
	return c.Do(ctx, "/", ListQueues{
		QueueNamePrefix: namePrefix,
	})
}

// PurgeQueue deletes every message in a queue.
func (c *Client) PurgeQueue(ctx context.Context, queueName string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), PurgeQueue{})
}

// GetQueueURL returns the url of a queue.
func (c *Client) GetQueueURL(ctx context.Context, queueName string) (*Response, error) {
	return c.Do(ctx, "/", GetQueueURL{
		QueueName: queueName,
	})
}

// GetQueueAttributes returns the named attributes of a queue.
func (c *Client) GetQueueAttributes(ctx context.Context, queueName string, attributeNames ...types.QueueAttributeName) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), GetQueueAttributes{
		AttributeNames: attributeNames,
	})
}

// SetQueueAttributes updates attributes of a queue.
func (c *Client) SetQueueAttributes(ctx context.Context, queueName string, attributes map[string]string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), SetQueueAttributes{
		Attributes: attributes,
	})
}

// TagQueue adds tags to a queue.
func (c *Client) TagQueue(ctx context.Context, queueName string, tags map[string]string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), TagQueue{
		Tags: tags,
	})
}

// UntagQueue removes tags from a queue.
func (c *Client) UntagQueue(ctx context.Context, queueName string, tagKeys []string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), UntagQueue{
		TagKeys: tagKeys,
	})
}

// AddPermission grants accounts access to actions on a queue.
func (c *Client) AddPermission(ctx context.Context, queueName, label string, accountIDs, actions []string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), AddPermission{
		Label:         label,
		AWSAccountIDs: accountIDs,
		Actions:       actions,
	})
}

// RemovePermission removes a permission added with [Client.AddPermission].
func (c *Client) RemovePermission(ctx context.Context, queueName, label string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), RemovePermission{
		Label: label,
	})
}

// StartMessageMoveTask starts moving messages from a dead letter queue.
func (c *Client) StartMessageMoveTask(ctx context.Context, sourceArn, destinationArn string) (*Response, error) {
	return c.Do(ctx, "/", StartMessageMoveTask{
		SourceArn:      sourceArn,
		DestinationArn: destinationArn,
	})
}

// CancelMessageMoveTask cancels a running message move task.
func (c *Client) CancelMessageMoveTask(ctx context.Context, taskHandle string) (*Response, error) {
	return c.Do(ctx, "/", CancelMessageMoveTask{
		TaskHandle: taskHandle,
	})
}

// ListMessageMoveTasks lists message move tasks, optionally filtered by source and destination.
func (c *Client) ListMessageMoveTasks(ctx context.Context, sourceArn, destinationArn string) (*Response, error) {
	return c.Do(ctx, "/", ListMessageMoveTasks{
		SourceArn:      sourceArn,
		DestinationArn: destinationArn,
	})
}
