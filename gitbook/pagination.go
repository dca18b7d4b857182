package gitbook

import (
	"net/url"
	"strconv"
)

// ListOptions selects one page of a paginated collection. Page is the opaque
// token from a previous List.Next; Limit is forwarded verbatim when set,
// including zero.
type ListOptions struct {
	Page  string
	Limit *float64
}

// Values encodes the options as query parameters.
func (o ListOptions) Values() url.Values {
	q := url.Values{}
	if o.Page != "" {
		q.Set("page", o.Page)
	}
	if o.Limit != nil {
		q.Set("limit", strconv.FormatFloat(*o.Limit, 'f', -1, 64))
	}
	return q
}
