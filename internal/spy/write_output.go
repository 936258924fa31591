package spy

import (
	"encoding/json"
	"io"
	"sync"
)

// WriteOutput returns a function that performs an interlocked write to
// a given output, one json document per line. The lock is referenced from the
// closure of the function returned.
func WriteOutput(output io.Writer) func(Request) {
	encoderMu := &sync.Mutex{}
	encoder := json.NewEncoder(output)
	encoder.SetEscapeHTML(false)
	return func(details Request) {
		encoderMu.Lock()
		defer encoderMu.Unlock()
		_ = encoder.Encode(details)
	}
}
