// Package gitbook is a thin client for the GitBook REST API.
//
// Every method maps onto exactly one HTTP request. Responses are trusted
// verbatim: entities are open records that keep every field the API returns,
// and non-2xx responses surface as *APIError without retries.
//
//	c := gitbook.New(token)
//	space, err := c.GetSpace(ctx, "space-id")
//	var apiErr *gitbook.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
//	    // ...
//	}
package gitbook
