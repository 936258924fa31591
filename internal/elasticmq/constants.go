package elasticmq

const (
	// DefaultEndpoint is the address of a local ElasticMQ.
	//
	// It uses 127.0.0.1 rather than localhost so the client does not try ::1 first
	// when ElasticMQ only listens on IPv4.
	DefaultEndpoint = "http://127.0.0.1:9324"

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "localsqs"
)

// Action names.
const (
	ActionAddPermission                = "AddPermission"
	ActionCancelMessageMoveTask        = "CancelMessageMoveTask"
	ActionChangeMessageVisibility      = "ChangeMessageVisibility"
	ActionChangeMessageVisibilityBatch = "ChangeMessageVisibilityBatch"
	ActionCreateQueue                  = "CreateQueue"
	ActionDeleteMessage                = "DeleteMessage"
	ActionDeleteMessageBatch           = "DeleteMessageBatch"
	ActionDeleteQueue                  = "DeleteQueue"
	ActionGetQueueAttributes           = "GetQueueAttributes"
	ActionGetQueueURL                  = "GetQueueUrl"
	ActionListMessageMoveTasks         = "ListMessageMoveTasks"
	ActionListQueues                   = "ListQueues"
	ActionPurgeQueue                   = "PurgeQueue"
	ActionReceiveMessage               = "ReceiveMessage"
	ActionRemovePermission             = "RemovePermission"
	ActionSendMessage                  = "SendMessage"
	ActionSendMessageBatch             = "SendMessageBatch"
	ActionSetQueueAttributes           = "SetQueueAttributes"
	ActionStartMessageMoveTask         = "StartMessageMoveTask"
	ActionTagQueue                     = "TagQueue"
	ActionUntagQueue                   = "UntagQueue"
)

// Message attribute data types.
const (
	AttributeTypeString = "String"
	AttributeTypeNumber = "Number"
	AttributeTypeBinary = "Binary"
)
