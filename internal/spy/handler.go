package spy

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/wcharczuk/localsqs/internal/form"
	"github.com/wcharczuk/localsqs/internal/httputil"
)

var _ http.Handler = (*Handler)(nil)

// Handler implements [http.Handler] and captures the details of a request and response
// that flows through it, calling the [Handler.Do] function once the request and response complete.
//
// Form encoded request bodies are parsed so the SQS action and its fields can be read
// off the [Request] without decoding the body again.
//
// You can use the provided [WriteOutput] helper to take the [Request] metadata and serialize it as json and write
// to the given writer (i.e. [os.Stdout]).
//
// Use the [Handler.Next] field to wrap another handler with the capturing mechanics of the spy handler, for example
// a reverse proxy to ElasticMQ, or a fake of it in tests.
type Handler struct {
	Do    func(Request)
	Next  http.Handler
	Clock clockwork.Clock
}

// ServeHTTP implements [http.Handler].
func (l *Handler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	clock := l.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var details Request
	start := clock.Now()

	details.Method = req.Method
	details.URL = req.URL.String()
	details.Path = req.URL.Path
	details.RequestHeaders = make(map[string]string)

	for key, values := range req.Header {
		if strings.EqualFold(key, httputil.HeaderAuthorization) {
			details.RequestHeaders[key] = "<redacted>"
			continue
		}
		for _, value := range values {
			details.RequestHeaders[key] = value
			break
		}
	}
	requestBody := new(bytes.Buffer)
	if req.Body != nil {
		_, _ = io.Copy(requestBody, req.Body)
		details.RequestBody = requestBody.String()
		req.Body = io.NopCloser(bytes.NewReader(requestBody.Bytes()))
	}
	if isFormEncoded(req) {
		if fields, err := form.Parse(details.RequestBody); err == nil {
			details.Form = fields
			details.Action = fields.Action()
		}
	}

	statusWriter := &responseWriter{inner: rw, response: new(bytes.Buffer)}

	// make the next request
	if l.Next != nil {
		l.Next.ServeHTTP(statusWriter, req)
	} else {
		statusWriter.WriteHeader(http.StatusOK)
		fmt.Fprintf(statusWriter, "OK!\n")
	}

	details.ResponseHeaders = make(map[string]string)
	for key, values := range statusWriter.inner.Header() {
		for _, value := range values {
			details.ResponseHeaders[key] = value
			break
		}
	}
	details.ResponseBody = statusWriter.response.String()
	details.StatusCode = statusWriter.StatusCode()
	details.Elapsed = clock.Since(start)

	if l.Do != nil {
		l.Do(details)
	}
}

func isFormEncoded(req *http.Request) bool {
	contentType := req.Header.Get(httputil.HeaderContentType)
	return strings.HasPrefix(contentType, httputil.ContentTypeApplicationFormEncoded)
}
