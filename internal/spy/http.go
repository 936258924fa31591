package spy

import (
	"time"
)

// Request is the captured detail of a single request and its response.
type Request struct {
	Method     string
	URL        string
	Path       string
	Action     string `json:",omitempty"`
	StatusCode int

	RequestHeaders map[string]string
	RequestBody    string
	Form           map[string]string `json:",omitempty"`

	ResponseHeaders map[string]string
	ResponseBody    string

	Elapsed time.Duration
}
