package elasticmq

import (
	"encoding/base64"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/wcharczuk/localsqs/internal/form"
)

var (
	_ form.Marshaler = CreateQueue{}
	_ form.Marshaler = DeleteQueue{}
	_ form.Marshaler = ListQueues{}
	_ form.Marshaler = PurgeQueue{}
	_ form.Marshaler = GetQueueURL{}
	_ form.Marshaler = GetQueueAttributes{}
	_ form.Marshaler = SetQueueAttributes{}
	_ form.Marshaler = TagQueue{}
	_ form.Marshaler = UntagQueue{}
	_ form.Marshaler = SendMessage{}
	_ form.Marshaler = SendMessageBatch{}
	_ form.Marshaler = ReceiveMessage{}
	_ form.Marshaler = DeleteMessage{}
	_ form.Marshaler = DeleteMessageBatch{}
	_ form.Marshaler = ChangeMessageVisibility{}
	_ form.Marshaler = ChangeMessageVisibilityBatch{}
	_ form.Marshaler = AddPermission{}
	_ form.Marshaler = RemovePermission{}
	_ form.Marshaler = StartMessageMoveTask{}
	_ form.Marshaler = CancelMessageMoveTask{}
	_ form.Marshaler = ListMessageMoveTasks{}
)

// CreateQueue is the CreateQueue payload.
type CreateQueue struct {
	QueueName  string
	Attributes map[string]string
}

func (CreateQueue) Action() string { return ActionCreateQueue }

func (a CreateQueue) MarshalFields(enc *form.Encoder) {
	enc.String("QueueName", a.QueueName)
	enc.Map("Attributes", a.Attributes)
}

// DeleteQueue is the DeleteQueue payload; the queue is named by the request path.
type DeleteQueue struct{}

func (DeleteQueue) Action() string { return ActionDeleteQueue }

func (DeleteQueue) MarshalFields(*form.Encoder) {}

// ListQueues is the ListQueues payload.
type ListQueues struct {
	QueueNamePrefix string
}

func (ListQueues) Action() string { return ActionListQueues }

func (a ListQueues) MarshalFields(enc *form.Encoder) {
	if a.QueueNamePrefix != "" {
		enc.String("QueueNamePrefix", a.QueueNamePrefix)
	}
}

// PurgeQueue is the PurgeQueue payload.
type PurgeQueue struct{}

func (PurgeQueue) Action() string { return ActionPurgeQueue }

func (PurgeQueue) MarshalFields(*form.Encoder) {}

// GetQueueURL is the GetQueueUrl payload.
type GetQueueURL struct {
	QueueName string
}

func (GetQueueURL) Action() string { return ActionGetQueueURL }

func (a GetQueueURL) MarshalFields(enc *form.Encoder) {
	enc.String("QueueName", a.QueueName)
}

// GetQueueAttributes is the GetQueueAttributes payload.
type GetQueueAttributes struct {
	AttributeNames []types.QueueAttributeName
}

func (GetQueueAttributes) Action() string { return ActionGetQueueAttributes }

func (a GetQueueAttributes) MarshalFields(enc *form.Encoder) {
	if len(a.AttributeNames) > 0 {
		enc.Strings("AttributeNames", queueAttributeNames(a.AttributeNames))
	}
}

// SetQueueAttributes is the SetQueueAttributes payload.
type SetQueueAttributes struct {
	Attributes map[string]string
}

func (SetQueueAttributes) Action() string { return ActionSetQueueAttributes }

func (a SetQueueAttributes) MarshalFields(enc *form.Encoder) {
	enc.Map("Attributes", a.Attributes)
}

// TagQueue is the TagQueue payload.
type TagQueue struct {
	Tags map[string]string
}

func (TagQueue) Action() string { return ActionTagQueue }

func (a TagQueue) MarshalFields(enc *form.Encoder) {
	enc.Map("Tags", a.Tags)
}

// UntagQueue is the UntagQueue payload.
type UntagQueue struct {
	TagKeys []string
}

func (UntagQueue) Action() string { return ActionUntagQueue }

func (a UntagQueue) MarshalFields(enc *form.Encoder) {
	enc.Strings("TagKeys", a.TagKeys)
}

// SendMessage is the SendMessage payload.
//
// MessageBody is already processed; see [ProcessMessageBody].
type SendMessage struct {
	MessageBody       string
	DelaySeconds      int32
	MessageAttributes map[string]types.MessageAttributeValue
}

func (SendMessage) Action() string { return ActionSendMessage }

func (a SendMessage) MarshalFields(enc *form.Encoder) {
	enc.String("MessageBody", a.MessageBody)
	if a.DelaySeconds > 0 {
		enc.Int("DelaySeconds", a.DelaySeconds)
	}
	marshalMessageAttributes(enc, "MessageAttributes", a.MessageAttributes)
}

// SendMessageBatch is the SendMessageBatch payload.
type SendMessageBatch struct {
	Entries []types.SendMessageBatchRequestEntry
}

func (SendMessageBatch) Action() string { return ActionSendMessageBatch }

func (a SendMessageBatch) MarshalFields(enc *form.Encoder) {
	form.List(enc, "Entries", a.Entries, func(entry *form.Encoder, e types.SendMessageBatchRequestEntry) {
		entry.OptionalString("Id", e.Id)
		entry.OptionalString("MessageBody", e.MessageBody)
		if e.DelaySeconds > 0 {
			entry.Int("DelaySeconds", e.DelaySeconds)
		}
		entry.OptionalString("MessageGroupId", e.MessageGroupId)
		entry.OptionalString("MessageDeduplicationId", e.MessageDeduplicationId)
		marshalMessageAttributes(entry, "MessageAttributes", e.MessageAttributes)
	})
}

// ReceiveMessage is the ReceiveMessage payload. Unset fields use the queue's defaults.
type ReceiveMessage struct {
	MaxNumberOfMessages   *int32
	VisibilityTimeout     *int32
	WaitTimeSeconds       *int32
	AttributeNames        []types.QueueAttributeName
	MessageAttributeNames []string
}

func (ReceiveMessage) Action() string { return ActionReceiveMessage }

func (a ReceiveMessage) MarshalFields(enc *form.Encoder) {
	enc.OptionalInt("MaxNumberOfMessages", a.MaxNumberOfMessages)
	enc.OptionalInt("VisibilityTimeout", a.VisibilityTimeout)
	enc.OptionalInt("WaitTimeSeconds", a.WaitTimeSeconds)
	if len(a.AttributeNames) > 0 {
		enc.Strings("AttributeNames", queueAttributeNames(a.AttributeNames))
	}
	if len(a.MessageAttributeNames) > 0 {
		enc.Strings("MessageAttributeNames", a.MessageAttributeNames)
	}
}

// DeleteMessage is the DeleteMessage payload.
type DeleteMessage struct {
	ReceiptHandle string
}

func (DeleteMessage) Action() string { return ActionDeleteMessage }

func (a DeleteMessage) MarshalFields(enc *form.Encoder) {
	enc.String("ReceiptHandle", a.ReceiptHandle)
}

// DeleteMessageBatch is the DeleteMessageBatch payload.
type DeleteMessageBatch struct {
	Entries []types.DeleteMessageBatchRequestEntry
}

func (DeleteMessageBatch) Action() string { return ActionDeleteMessageBatch }

func (a DeleteMessageBatch) MarshalFields(enc *form.Encoder) {
	form.List(enc, "Entries", a.Entries, func(entry *form.Encoder, e types.DeleteMessageBatchRequestEntry) {
		entry.OptionalString("Id", e.Id)
		entry.OptionalString("ReceiptHandle", e.ReceiptHandle)
	})
}

// ChangeMessageVisibility is the ChangeMessageVisibility payload.
type ChangeMessageVisibility struct {
	ReceiptHandle     string
	VisibilityTimeout int32
}

func (ChangeMessageVisibility) Action() string { return ActionChangeMessageVisibility }

func (a ChangeMessageVisibility) MarshalFields(enc *form.Encoder) {
	enc.String("ReceiptHandle", a.ReceiptHandle)
	enc.Int("VisibilityTimeout", a.VisibilityTimeout)
}

// ChangeMessageVisibilityBatch is the ChangeMessageVisibilityBatch payload.
type ChangeMessageVisibilityBatch struct {
	Entries []types.ChangeMessageVisibilityBatchRequestEntry
}

func (ChangeMessageVisibilityBatch) Action() string { return ActionChangeMessageVisibilityBatch }

func (a ChangeMessageVisibilityBatch) MarshalFields(enc *form.Encoder) {
	form.List(enc, "Entries", a.Entries, func(entry *form.Encoder, e types.ChangeMessageVisibilityBatchRequestEntry) {
		entry.OptionalString("Id", e.Id)
		entry.OptionalString("ReceiptHandle", e.ReceiptHandle)
		entry.Int("VisibilityTimeout", e.VisibilityTimeout)
	})
}

// AddPermission is the AddPermission payload.
type AddPermission struct {
	Label         string
	AWSAccountIDs []string
	Actions       []string
}

func (AddPermission) Action() string { return ActionAddPermission }

func (a AddPermission) MarshalFields(enc *form.Encoder) {
	enc.String("Label", a.Label)
	enc.Strings("AWSAccountIds", a.AWSAccountIDs)
	enc.Strings("Actions", a.Actions)
}

// RemovePermission is the RemovePermission payload.
type RemovePermission struct {
	Label string
}

func (RemovePermission) Action() string { return ActionRemovePermission }

func (a RemovePermission) MarshalFields(enc *form.Encoder) {
	enc.String("Label", a.Label)
}

// StartMessageMoveTask is the StartMessageMoveTask payload.
type StartMessageMoveTask struct {
	SourceArn      string
	DestinationArn string
}

func (StartMessageMoveTask) Action() string { return ActionStartMessageMoveTask }

func (a StartMessageMoveTask) MarshalFields(enc *form.Encoder) {
	enc.String("SourceArn", a.SourceArn)
	enc.String("DestinationArn", a.DestinationArn)
}

// CancelMessageMoveTask is the CancelMessageMoveTask payload.
type CancelMessageMoveTask struct {
	TaskHandle string
}

func (CancelMessageMoveTask) Action() string { return ActionCancelMessageMoveTask }

func (a CancelMessageMoveTask) MarshalFields(enc *form.Encoder) {
	enc.String("TaskHandle", a.TaskHandle)
}

// ListMessageMoveTasks is the ListMessageMoveTasks payload.
type ListMessageMoveTasks struct {
	SourceArn      string
	DestinationArn string
}

func (ListMessageMoveTasks) Action() string { return ActionListMessageMoveTasks }

func (a ListMessageMoveTasks) MarshalFields(enc *form.Encoder) {
	if a.SourceArn != "" {
		enc.String("SourceArn", a.SourceArn)
	}
	if a.DestinationArn != "" {
		enc.String("DestinationArn", a.DestinationArn)
	}
}

func marshalMessageAttributes(enc *form.Encoder, name string, attributes map[string]types.MessageAttributeValue) {
	for key, value := range attributes {
		enc.Object(name+"."+key, func(attribute *form.Encoder) {
			attribute.OptionalString("DataType", value.DataType)
			attribute.OptionalString("StringValue", value.StringValue)
			if value.BinaryValue != nil {
				attribute.String("BinaryValue", base64.StdEncoding.EncodeToString(value.BinaryValue))
			}
			if len(value.StringListValues) > 0 {
				attribute.Strings("StringListValues", value.StringListValues)
			}
		})
	}
}

func queueAttributeNames(names []types.QueueAttributeName) []string {
	output := make([]string, len(names))
	for index, name := range names {
		output[index] = string(name)
	}
	return output
}
