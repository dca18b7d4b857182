package gitbook

import "fmt"

// APIError is returned for every non-2xx response. Endpoint is the literal
// "METHOD path" that produced it, without base URL or query string.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitBook API error %d (%s) on %s: %s", e.StatusCode, e.Status, e.Endpoint, e.Body)
}

// UnexpectedContentError is returned when a successful response is not JSON
// but the caller asked for a structured value. Body holds the raw text.
type UnexpectedContentError struct {
	Endpoint    string
	ContentType string
	Body        string
}

func (e *UnexpectedContentError) Error() string {
	ct := e.ContentType
	if ct == "" {
		ct = "no content type"
	}
	return fmt.Sprintf("GitBook API returned %s instead of JSON on %s", ct, e.Endpoint)
}
