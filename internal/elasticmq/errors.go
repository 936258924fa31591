package elasticmq

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is returned when ElasticMQ answers an action with a non-2xx status.
type Error struct {
	Action     string
	StatusCode int
	Body       string
}

// Error implements error.
func (e *Error) Error() string {
	message := fmt.Sprintf("elasticmq; %s failed with status %d %s", e.Action, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(e.Body); body != "" {
		message += ": " + body
	}
	return message
}
