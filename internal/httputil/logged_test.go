package httputil

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return fn(req)
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func Test_LoggedTransport(t *testing.T) {
	clock := clockwork.NewFakeClock()
	buf := new(bytes.Buffer)
	transport := &LoggedTransport{
		Next: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			clock.Advance(150 * time.Millisecond)
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{HeaderContentType: []string{ContentTypeApplicationXML}},
				Body:       io.NopCloser(strings.NewReader("<Response/>")),
			}, nil
		}),
		Logger: testLogger(buf),
		Clock:  clock,
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:9324/queue/test", nil)
	require.NoError(t, err)
	res, err := transport.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	output := buf.String()
	require.Contains(t, output, "msg=http-request")
	require.Contains(t, output, "verb=POST")
	require.Contains(t, output, "url=http://127.0.0.1:9324/queue/test")
	require.Contains(t, output, "elapsed=150ms")
	require.Contains(t, output, "status_code=OK")
	require.Contains(t, output, "content-type=application/xml")
}

func Test_LoggedTransport_error(t *testing.T) {
	buf := new(bytes.Buffer)
	transport := &LoggedTransport{
		Next: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
		Logger: testLogger(buf),
		Clock:  clockwork.NewFakeClock(),
	}
	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:9324/", nil)
	require.NoError(t, err)
	_, err = transport.RoundTrip(req)
	require.EqualError(t, err, "connection refused")
	require.Contains(t, buf.String(), `err="connection refused"`)
}

func Test_LoggedTransport_quietAboveDebug(t *testing.T) {
	buf := new(bytes.Buffer)
	transport := Logged(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: http.NoBody}, nil
	}), slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:9324/", nil)
	require.NoError(t, err)
	_, err = transport.RoundTrip(req)
	require.NoError(t, err)
	require.Empty(t, buf.String())
}
