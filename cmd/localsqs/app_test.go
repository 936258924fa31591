package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/localsqs/internal/docker"
	"github.com/wcharczuk/localsqs/internal/elasticmqtest"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func Test_createQueue(t *testing.T) {
	server := elasticmqtest.NewServer(t)
	a, stdout, stderr := testApp("")

	code := a.run(context.Background(), testArgs(server, "createQueue", "--attribute", "DelaySeconds=5", "orders"))
	require.Equal(t, 0, code, stderr.String())
	require.True(t, strings.HasPrefix(stdout.String(), "Done: <CreateQueueResponse>"))

	requests := server.Requests()
	require.Len(t, requests, 1)
	require.Equal(t, "/", requests[0].Path)
	require.Equal(t, map[string]string{
		"Action":                  "CreateQueue",
		"QueueName":               "orders",
		"Attributes.DelaySeconds": "5",
	}, requests[0].Form)
}

func Test_createQueue_jsonAttribute(t *testing.T) {
	server := elasticmqtest.NewServer(t)
	a, _, stderr := testApp("")

	redrivePolicy := `{"deadLetterTargetArn":"arn:aws:sqs:elasticmq:000000000000:orders-dlq","maxReceiveCount":"5"}`
	code := a.run(context.Background(), testArgs(server, "createQueue",
		"--attribute", "RedrivePolicy="+redrivePolicy,
		"--attribute", "VisibilityTimeout=30",
		"orders",
	))
	require.Equal(t, 0, code, stderr.String())
	form := server.Requests()[0].Form
	require.Equal(t, redrivePolicy, form["Attributes.RedrivePolicy"])
	require.Equal(t, "30", form["Attributes.VisibilityTimeout"])
}

func Test_send_attributeWithComma(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, stderr := testApp("")

	code := a.run(context.Background(), testArgs(server, "send", "--attribute", "kind=a,b", "orders", "hello"))
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, "a,b", server.Requests()[0].Form["MessageAttributes.kind.StringValue"])
}

func Test_apiOverridePrinted(t *testing.T) {
	server := elasticmqtest.NewServer(t)
	a, stdout, stderr := testApp("")

	require.Equal(t, 0, a.run(context.Background(), testArgs(server, "listQueues")))
	require.True(t, strings.HasPrefix(stderr.String(), "ElasticMQ API URL set to: "+server.URL()+"\n"))
	require.NotContains(t, stdout.String(), "ElasticMQ API URL set to")
}

func Test_missingArguments_noRequest(t *testing.T) {
	server := elasticmqtest.NewServer(t)
	testCases := [][]string{
		{"createQueue"},
		{"deleteQueue"},
		{"purgeQueue"},
		{"getQueueUrl"},
		{"getQueueAttributes"},
		{"receive"},
		{"send"},
		{"removePermission", "orders"},
		{"deleteMessage", "orders"},
		{"startMessageMoveTask", "arn:source"},
		{"cancelMessageMoveTask"},
	}
	for _, args := range testCases {
		t.Run(args[0], func(t *testing.T) {
			a, stdout, stderr := testApp("")
			code := a.run(context.Background(), testArgs(server, args...))
			require.Equal(t, 1, code)
			require.Empty(t, stdout.String())
			require.Contains(t, stderr.String(), "Error: Missing required argument(s): ")
		})
	}
	require.Empty(t, server.Requests())
}

func Test_missingArguments_namesEach(t *testing.T) {
	server := elasticmqtest.NewServer(t)
	a, _, stderr := testApp("")
	code := a.run(context.Background(), testArgs(server, "changeMessageVisibility"))
	require.Equal(t, 1, code)
	require.Equal(t, testAPILine(server)+"Error: Missing required argument(s): queueName, receiptHandle, visibilityTimeout\n", stderr.String())

	a, _, stderr = testApp("")
	code = a.run(context.Background(), testArgs(server, "deleteBatch"))
	require.Equal(t, 1, code)
	require.Equal(t, testAPILine(server)+"Error: Missing required argument(s): queueName, receiptHandle\n", stderr.String())
	require.Empty(t, server.Requests())
}

func Test_deleteQueue(t *testing.T) {
	server := elasticmqtest.NewServer(t, "myqueue")
	a, stdout, _ := testApp("")

	require.Equal(t, 0, a.run(context.Background(), testArgs(server, "deleteQueue", "myqueue")))
	require.Contains(t, stdout.String(), "Done: ")

	requests := server.Requests()
	require.Equal(t, "/queue/myqueue", requests[0].Path)
	require.Equal(t, "Action=DeleteQueue", requests[0].RequestBody)
}

func Test_listQueues(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders", "payments")

	a, stdout, _ := testApp("")
	require.Equal(t, 0, a.run(context.Background(), testArgs(server, "listQueues", "pay")))
	assert.Contains(t, stdout.String(), "/queue/payments")
	assert.NotContains(t, stdout.String(), "/queue/orders")

	a, _, _ = testApp("")
	require.Equal(t, 0, a.run(context.Background(), testArgs(server, "listQueues", "--namePrefix", "ord")))

	a, _, _ = testApp("")
	require.Equal(t, 0, a.run(context.Background(), testArgs(server, "listQueues")))

	requests := server.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, "pay", requests[0].Form["QueueNamePrefix"])
	assert.Equal(t, "ord", requests[1].Form["QueueNamePrefix"])
	assert.Equal(t, map[string]string{"Action": "ListQueues"}, requests[2].Form)
}

func Test_send(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, stdout, _ := testApp("")

	code := a.run(context.Background(), testArgs(server, "send", "--delay", "3", "--attribute", "kind=greeting", "orders", "hello"))
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "<MessageId>")

	form := server.Requests()[0].Form
	require.Equal(t, "/queue/orders", server.Requests()[0].Path)
	require.Equal(t, "hello", form["MessageBody"])
	require.Equal(t, "3", form["DelaySeconds"])
	require.Equal(t, "greeting", form["MessageAttributes.kind.StringValue"])
}

func Test_send_snsFromStdin(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, stderr := testApp("piped body\n")

	code := a.run(context.Background(), testArgs(server, "send", "--sns", "orders"))
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, `{"Message":"piped body"}`, server.Requests()[0].Form["MessageBody"])
}

func Test_sendBatch(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, _ := testApp("")

	code := a.run(context.Background(), testArgs(server, "sendBatch", "orders", "one", "two"))
	require.Equal(t, 0, code)

	form := server.Requests()[0].Form
	require.Equal(t, "SendMessageBatch", form["Action"])
	require.Equal(t, "one", form["Entries.1.MessageBody"])
	require.Equal(t, "two", form["Entries.2.MessageBody"])
	require.NotEmpty(t, form["Entries.1.Id"])
	require.NotEqual(t, form["Entries.1.Id"], form["Entries.2.Id"])
}

func Test_receive(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, _ := testApp("")

	code := a.run(context.Background(), testArgs(server, "receive", "--max-messages", "10", "--wait-time", "0", "--message-attribute-name", "All", "orders"))
	require.Equal(t, 0, code)
	require.Equal(t, map[string]string{
		"Action":                "ReceiveMessage",
		"MaxNumberOfMessages":   "10",
		"WaitTimeSeconds":       "0",
		"MessageAttributeNames": "All",
	}, server.Requests()[0].Form)
}

func Test_receive_defaults(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, _ := testApp("")

	require.Equal(t, 0, a.run(context.Background(), testArgs(server, "receive", "orders")))
	require.Equal(t, map[string]string{"Action": "ReceiveMessage"}, server.Requests()[0].Form)
}

func Test_queueCommands(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	ctx := context.Background()
	commands := [][]string{
		{"purgeQueue", "orders"},
		{"getQueueUrl", "orders"},
		{"getQueueAttributes", "--attribute-name", "All", "orders"},
		{"setQueueAttributes", "--attribute", "VisibilityTimeout=10", "orders"},
		{"tagQueue", "--tag", "team=core", "orders"},
		{"untagQueue", "orders", "team"},
		{"addPermission", "--account-id", "000000000000", "--action", "SendMessage", "orders", "producers"},
		{"removePermission", "orders", "producers"},
		{"deleteMessage", "orders", "rh-1"},
		{"deleteBatch", "orders", "rh-1", "rh-2"},
		{"changeMessageVisibility", "orders", "rh-1", "30"},
		{"changeVisibilityBatch", "--visibility-timeout", "0", "orders", "rh-1"},
		{"startMessageMoveTask", "arn:source", "arn:destination"},
		{"listMessageMoveTasks", "--source-arn", "arn:source"},
		{"cancelMessageMoveTask", "task-1"},
	}
	for _, args := range commands {
		a, stdout, stderr := testApp("")
		require.Equal(t, 0, a.run(ctx, testArgs(server, args...)), "%v: %s", args, stderr.String())
		require.True(t, strings.HasPrefix(stdout.String(), "Done: "), args)
	}

	requests := server.Requests()
	require.Len(t, requests, len(commands))
	var actions []string
	for _, req := range requests {
		actions = append(actions, req.Action)
	}
	require.Equal(t, []string{
		"PurgeQueue",
		"GetQueueUrl",
		"GetQueueAttributes",
		"SetQueueAttributes",
		"TagQueue",
		"UntagQueue",
		"AddPermission",
		"RemovePermission",
		"DeleteMessage",
		"DeleteMessageBatch",
		"ChangeMessageVisibility",
		"ChangeMessageVisibilityBatch",
		"StartMessageMoveTask",
		"ListMessageMoveTasks",
		"CancelMessageMoveTask",
	}, actions)

	assert.Equal(t, "All", requests[2].Form["AttributeNames"])
	assert.Equal(t, "10", requests[3].Form["Attributes.VisibilityTimeout"])
	assert.Equal(t, "core", requests[4].Form["Tags.team"])
	assert.Equal(t, "team", requests[5].Form["TagKeys"])
	assert.Equal(t, "000000000000", requests[6].Form["AWSAccountIds"])
	assert.Equal(t, "rh-2", requests[9].Form["Entries.2.ReceiptHandle"])
	assert.Equal(t, "30", requests[10].Form["VisibilityTimeout"])
	assert.Equal(t, "0", requests[11].Form["Entries.1.VisibilityTimeout"])
}

func Test_changeMessageVisibility_invalidTimeout(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, stderr := testApp("")

	require.Equal(t, 1, a.run(context.Background(), testArgs(server, "changeMessageVisibility", "orders", "rh", "soon")))
	require.Contains(t, stderr.String(), `invalid visibilityTimeout "soon"`)
	require.Empty(t, server.Requests())
}

func Test_apiError(t *testing.T) {
	server := elasticmqtest.NewServer(t)
	a, stdout, stderr := testApp("")

	require.Equal(t, 1, a.run(context.Background(), testArgs(server, "purgeQueue", "missing")))
	require.Empty(t, stdout.String())
	require.True(t, strings.HasPrefix(stderr.String(), testAPILine(server)+"Error with ElasticMQ API request: elasticmq; PurgeQueue failed with status 400 Bad Request"))
}

func Test_apiFromEnvironment(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	t.Setenv("LOCALSQS_API", server.URL())
	a, _, stderr := testApp("")

	require.Equal(t, 0, a.run(context.Background(), []string{"localsqs", "purgeQueue", "orders"}), stderr.String())
	require.Len(t, server.Requests(), 1)
}

func Test_debugLogsRequests(t *testing.T) {
	server := elasticmqtest.NewServer(t, "orders")
	a, _, stderr := testApp("")
	a.httpClient = nil

	require.Equal(t, 0, a.run(context.Background(), []string{"localsqs", "--api", server.URL(), "--debug", "purgeQueue", "orders"}))
	require.Contains(t, stderr.String(), "msg=http-request")
	require.Contains(t, stderr.String(), "action=PurgeQueue")
}

func Test_invalidLogFormat(t *testing.T) {
	a, _, stderr := testApp("")
	require.Equal(t, 1, a.run(context.Background(), []string{"localsqs", "--log-format", "yaml", "listQueues"}))
	require.Contains(t, stderr.String(), `invalid log format: "yaml"`)
}

func Test_up_dockerMissing(t *testing.T) {
	a, stdout, stderr := testApp("")
	a.runtimeOptions = []docker.RuntimeOption{
		docker.OptBinary("localsqs-docker-does-not-exist"),
	}
	require.Equal(t, 1, a.run(context.Background(), []string{"localsqs", "up", "--force"}))
	require.Empty(t, stdout.String())
	require.Equal(t, "Error: Docker is not installed. Please install Docker to use this command.\n", stderr.String())
}

func Test_readStdin(t *testing.T) {
	a, _, _ := testApp("body\r\n")
	body, err := a.readStdin()
	require.NoError(t, err)
	require.Equal(t, "body", body)

	a.stdin = io.MultiReader()
	body, err = a.readStdin()
	require.NoError(t, err)
	require.Empty(t, body)
}

func testApp(stdin string) (*app, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	a := newApp()
	a.stdin = strings.NewReader(stdin)
	a.stdout = stdout
	a.stderr = stderr
	a.httpClient = http.DefaultClient
	return a, stdout, stderr
}

func testAPILine(server *elasticmqtest.Server) string {
	return "ElasticMQ API URL set to: " + server.URL() + "\n"
}

func testArgs(server *elasticmqtest.Server, args ...string) []string {
	return append([]string{"localsqs", "--api", server.URL()}, args...)
}
