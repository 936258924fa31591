package httputil

// Header names in canonical form.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
)

const (
	// ContentTypeApplicationFormEncoded is the content type of every SQS query request.
	ContentTypeApplicationFormEncoded = "application/x-www-form-urlencoded"

	// ContentTypeApplicationXML is the content type ElasticMQ responds with.
	ContentTypeApplicationXML = "application/xml"
)
