package elasticmq

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TextBody returns a message body that is sent as is.
func TextBody(text string) MessageBody {
	return MessageBody{text: text}
}

// JSONBody returns a message body that is encoded as json before it is sent.
func JSONBody(value any) MessageBody {
	return MessageBody{value: value, isJSON: true}
}

// MessageBody is a message body before it's sent, either plain text or a
// structured value.
type MessageBody struct {
	text   string
	value  any
	isJSON bool
}

// ProcessMessageBody returns the text that is sent for a message body.
//
// Structured bodies are encoded as json. If mockSNS is set the text is wrapped
// in an SNS notification envelope, i.e. {"Message":"<text>"}, the shape a queue
// subscribed to a topic would receive.
func ProcessMessageBody(body MessageBody, mockSNS bool) (string, error) {
	text := body.text
	if body.isJSON {
		encoded, err := marshalJSON(body.value)
		if err != nil {
			return "", err
		}
		text = encoded
	}
	if !mockSNS {
		return text, nil
	}
	return marshalJSON(snsEnvelope{Message: text})
}

type snsEnvelope struct {
	Message string
}

func marshalJSON(v any) (string, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
