package spy

import (
	"bufio"
	"bytes"
	"errors"
	"net"
	"net/http"
)

type responseWriter struct {
	inner      http.ResponseWriter
	response   *bytes.Buffer
	statusCode int
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	_, _ = rw.response.Write(b)
	return rw.inner.Write(b)
}

func (rw *responseWriter) Header() http.Header {
	return rw.inner.Header()
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.inner.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("spy; inner response writer doesn't support hijacking")
	}
	return hijacker.Hijack()
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.inner.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if typed, ok := rw.inner.(http.Flusher); ok {
		typed.Flush()
	}
}

// StatusCode returns the status written, defaulting to 200 when the handler never wrote one.
func (rw *responseWriter) StatusCode() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}
