// Package elasticmqtest provides an in-memory stand in for ElasticMQ's query api.
//
// It keeps track of queue names only; messages are acknowledged but never stored.
package elasticmqtest

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/wcharczuk/localsqs/internal/form"
	"github.com/wcharczuk/localsqs/internal/httputil"
	"github.com/wcharczuk/localsqs/internal/spy"
)

// NewServer starts a fake ElasticMQ with the given queues already created.
//
// The server is closed when the test completes.
func NewServer(t testing.TB, queues ...string) *Server {
	t.Helper()
	s := &Server{
		queues:   make(map[string]struct{}),
		failures: make(map[string]int),
	}
	for _, queue := range queues {
		s.queues[queue] = struct{}{}
	}
	router := httprouter.New()
	router.POST("/", s.handle)
	router.POST("/queue/:queueName", s.handle)
	captured := &spy.Handler{
		Do:   s.capture,
		Next: router,
	}
	// responses are buffered so a request is recorded before the client sees its response
	s.server = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		recorder := httptest.NewRecorder()
		captured.ServeHTTP(recorder, req)
		for key, values := range recorder.Header() {
			rw.Header()[key] = values
		}
		rw.WriteHeader(recorder.Code)
		_, _ = rw.Write(recorder.Body.Bytes())
	}))
	t.Cleanup(s.server.Close)
	return s
}

// Server is a fake ElasticMQ.
type Server struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []spy.Request
	queues   map[string]struct{}
	failures map[string]int
}

// URL returns the base url of the server, e.g. "http://127.0.0.1:54321".
func (s *Server) URL() string {
	return s.server.URL
}

// Requests returns the requests received so far, in order.
func (s *Server) Requests() []spy.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Queues returns the names of the queues that exist, sorted.
func (s *Server) Queues() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	output := make([]string, 0, len(s.queues))
	for queue := range s.queues {
		output = append(output, queue)
	}
	slices.Sort(output)
	return output
}

// Fail makes every subsequent request for an action answer with the given status.
func (s *Server) Fail(action string, statusCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[action] = statusCode
}

func (s *Server) capture(r spy.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

func (s *Server) handle(rw http.ResponseWriter, req *http.Request, params httprouter.Params) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(rw, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	fields, err := form.Parse(string(body))
	if err != nil {
		writeError(rw, http.StatusBadRequest, "MalformedQueryString", err.Error())
		return
	}
	action := fields.Action()
	if action == "" {
		writeError(rw, http.StatusBadRequest, "MissingAction", "Action is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if statusCode, ok := s.failures[action]; ok {
		writeError(rw, statusCode, "InternalFailure", "injected failure for "+action)
		return
	}

	queueName := params.ByName("queueName")
	if queueName != "" {
		if _, ok := s.queues[queueName]; !ok {
			writeError(rw, http.StatusBadRequest, "AWS.SimpleQueueService.NonExistentQueue", "The specified queue does not exist.")
			return
		}
	}

	result := new(strings.Builder)
	switch action {
	case "CreateQueue":
		name := fields["QueueName"]
		if name == "" {
			writeError(rw, http.StatusBadRequest, "MissingParameter", "QueueName is required")
			return
		}
		s.queues[name] = struct{}{}
		writeElement(result, "QueueUrl", s.queueURL(name))
	case "DeleteQueue":
		delete(s.queues, queueName)
	case "GetQueueUrl":
		name := fields["QueueName"]
		if _, ok := s.queues[name]; !ok {
			writeError(rw, http.StatusBadRequest, "AWS.SimpleQueueService.NonExistentQueue", "The specified queue does not exist.")
			return
		}
		writeElement(result, "QueueUrl", s.queueURL(name))
	case "ListQueues":
		prefix := fields["QueueNamePrefix"]
		names := make([]string, 0, len(s.queues))
		for name := range s.queues {
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		slices.Sort(names)
		for _, name := range names {
			writeElement(result, "QueueUrl", s.queueURL(name))
		}
	case "SendMessage":
		writeElement(result, "MessageId", uuid.NewString())
	}

	rw.Header().Set(httputil.HeaderContentType, httputil.ContentTypeApplicationXML)
	rw.WriteHeader(http.StatusOK)
	fmt.Fprintf(rw, "<%[1]sResponse><%[1]sResult>%[2]s</%[1]sResult><ResponseMetadata><RequestId>%[3]s</RequestId></ResponseMetadata></%[1]sResponse>",
		action, result.String(), uuid.NewString(),
	)
}

func (s *Server) queueURL(name string) string {
	return s.server.URL + "/queue/" + name
}

func writeElement(w io.Writer, name, value string) {
	fmt.Fprintf(w, "<%s>", name)
	_ = xml.EscapeText(w, []byte(value))
	fmt.Fprintf(w, "</%s>", name)
}

func writeError(rw http.ResponseWriter, statusCode int, code, message string) {
	rw.Header().Set(httputil.HeaderContentType, httputil.ContentTypeApplicationXML)
	rw.WriteHeader(statusCode)
	body := new(strings.Builder)
	body.WriteString("<ErrorResponse><Error><Type>Sender</Type>")
	writeElement(body, "Code", code)
	writeElement(body, "Message", message)
	body.WriteString("</Error>")
	writeElement(body, "RequestId", uuid.NewString())
	body.WriteString("</ErrorResponse>")
	_, _ = io.WriteString(rw, body.String())
}
