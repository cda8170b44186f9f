package functions

import (
	"context"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// HTTPRequest is the part of an incoming HTTP request the handlers read
type HTTPRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
}

// QueryValue returns the first value of a query parameter and whether it was present
func (r HTTPRequest) QueryValue(key string) (string, bool) {
	values, ok := r.Query[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Responder is the response side of an HTTP function. Send completes the
// response with a 200 text body.
type Responder interface {
	Send(body string)
}

// RequestFromFunctionURL converts a Lambda Function URL request
func RequestFromFunctionURL(request events.LambdaFunctionURLRequest) HTTPRequest {
	query, err := url.ParseQuery(request.RawQueryString)
	if err != nil || len(query) == 0 {
		query = url.Values{}
		for k, v := range request.QueryStringParameters {
			query.Set(k, v)
		}
	}
	return HTTPRequest{
		Method:  request.RequestContext.HTTP.Method,
		Path:    request.RequestContext.HTTP.Path,
		Query:   query,
		Headers: request.Headers,
	}
}

// SimpleHTTP echoes the "text" query parameter. An absent parameter is
// rendered as "undefined"; of repeated parameters only the first is echoed.
func SimpleHTTP(ctx context.Context, req HTTPRequest, res Responder) {
	text, ok := req.QueryValue("text")
	if !ok {
		text = "undefined"
	}
	res.Send("text: " + text)
}
