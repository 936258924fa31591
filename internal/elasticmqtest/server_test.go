package elasticmqtest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/localsqs/internal/httputil"
)

func Test_Server_queueLifecycle(t *testing.T) {
	server := NewServer(t)

	status, body := testPost(t, server, "/", "Action=CreateQueue&QueueName=orders")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "<QueueUrl>"+server.URL()+"/queue/orders</QueueUrl>")
	require.Equal(t, []string{"orders"}, server.Queues())

	status, _ = testPost(t, server, "/queue/orders", "Action=DeleteQueue")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, server.Queues())

	status, body = testPost(t, server, "/queue/orders", "Action=PurgeQueue")
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body, "<Code>AWS.SimpleQueueService.NonExistentQueue</Code>")

	requests := server.Requests()
	require.Len(t, requests, 3)
	require.Equal(t, "CreateQueue", requests[0].Action)
	require.Equal(t, http.StatusBadRequest, requests[2].StatusCode)
}

func Test_Server_missingAction(t *testing.T) {
	server := NewServer(t)
	status, body := testPost(t, server, "/", "QueueName=orders")
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body, "MissingAction")
}

func Test_Server_Fail(t *testing.T) {
	server := NewServer(t, "orders")
	server.Fail("ListQueues", http.StatusServiceUnavailable)

	status, _ := testPost(t, server, "/", "Action=ListQueues")
	require.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = testPost(t, server, "/", "Action=GetQueueUrl&QueueName=orders")
	require.Equal(t, http.StatusOK, status)
}

func testPost(t *testing.T, server *Server, path, body string) (int, string) {
	t.Helper()
	res, err := http.Post(server.URL()+path, httputil.ContentTypeApplicationFormEncoded, strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	contents, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(contents)
}
