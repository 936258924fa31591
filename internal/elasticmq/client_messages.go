package elasticmq

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SendMessageEntry is a message to send with [Client.SendMessage].
type SendMessageEntry struct {
	MessageBody       MessageBody
	DelaySeconds      int32
	MessageAttributes map[string]types.MessageAttributeValue
}

// SendMessageBatchEntry is a message to send with [Client.SendMessageBatch].
type SendMessageBatchEntry struct {
	ID                string
	MessageBody       MessageBody
	DelaySeconds      int32
	MessageAttributes map[string]types.MessageAttributeValue
}

// SendMessage sends a message to a queue.
//
// If mockSNS is set the body is wrapped as an SNS notification; see [ProcessMessageBody].
func (c *Client) SendMessage(ctx context.Context, queueName string, entry SendMessageEntry, mockSNS bool) (*Response, error) {
	body, err := ProcessMessageBody(entry.MessageBody, mockSNS)
	if err != nil {
		return nil, fmt.Errorf("elasticmq; %s: encoding message body: %w", ActionSendMessage, err)
	}
	return c.Do(ctx, queuePath(queueName), SendMessage{
		MessageBody:       body,
		DelaySeconds:      entry.DelaySeconds,
		MessageAttributes: entry.MessageAttributes,
	})
}

// SendMessageBatch sends messages to a queue in one request, in order.
func (c *Client) SendMessageBatch(ctx context.Context, queueName string, entries []SendMessageBatchEntry, mockSNS bool) (*Response, error) {
	payload := SendMessageBatch{
		Entries: make([]types.SendMessageBatchRequestEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		body, err := ProcessMessageBody(entry.MessageBody, mockSNS)
		if err != nil {
			return nil, fmt.Errorf("elasticmq; %s: encoding message body for entry %q: %w", ActionSendMessageBatch, entry.ID, err)
		}
		payload.Entries = append(payload.Entries, types.SendMessageBatchRequestEntry{
			Id:                aws.String(entry.ID),
			MessageBody:       aws.String(body),
			DelaySeconds:      entry.DelaySeconds,
			MessageAttributes: entry.MessageAttributes,
		})
	}
	return c.Do(ctx, queuePath(queueName), payload)
}

// ReceiveMessage receives messages from a queue.
func (c *Client) ReceiveMessage(ctx context.Context, queueName string, input ReceiveMessage) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), input)
}

// DeleteMessage deletes a received message.
func (c *Client) DeleteMessage(ctx context.Context, queueName, receiptHandle string) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), DeleteMessage{
		ReceiptHandle: receiptHandle,
	})
}

// DeleteMessageBatch deletes received messages in one request.
func (c *Client) DeleteMessageBatch(ctx context.Context, queueName string, entries []types.DeleteMessageBatchRequestEntry) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), DeleteMessageBatch{
		Entries: entries,
	})
}

// ChangeMessageVisibility changes how long a received message stays hidden.
func (c *Client) ChangeMessageVisibility(ctx context.Context, queueName, receiptHandle string, visibilityTimeout int32) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), ChangeMessageVisibility{
		ReceiptHandle:     receiptHandle,
		VisibilityTimeout: visibilityTimeout,
	})
}

// ChangeMessageVisibilityBatch changes the visibility of received messages in one request.
func (c *Client) ChangeMessageVisibilityBatch(ctx context.Context, queueName string, entries []types.ChangeMessageVisibilityBatchRequestEntry) (*Response, error) {
	return c.Do(ctx, queuePath(queueName), ChangeMessageVisibilityBatch{
		Entries: entries,
	})
}

// StringAttributes returns message attributes with the [AttributeTypeString] data type.
func StringAttributes(values map[string]string) map[string]types.MessageAttributeValue {
	if len(values) == 0 {
		return nil
	}
	output := make(map[string]types.MessageAttributeValue, len(values))
	for key, value := range values {
		output[key] = types.MessageAttributeValue{
			DataType:    aws.String(AttributeTypeString),
			StringValue: aws.String(value),
		}
	}
	return output
}
