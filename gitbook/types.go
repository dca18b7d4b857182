package gitbook

import (
	"bytes"
	"encoding/json"
)

// Record is a JSON object returned by the API. Every field is kept, including
// ones this package does not model; numbers are json.Number so they re-encode
// exactly.
type Record map[string]any

// String returns the string field key, or "" when absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the integer field key, or 0 when absent or not an integer.
func (r Record) Int(key string) int64 {
	switch n := r[key].(type) {
	case json.Number:
		v, _ := n.Int64()
		return v
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// Object returns the nested object field key, or nil.
func (r Record) Object(key string) Record {
	m, _ := r[key].(map[string]any)
	return m
}

// Entities. Each is an open record with accessors for the fields GitBook
// always returns.
type (
	Space         Record
	Page          Record
	SpaceContent  Record
	PageLink      Record
	ContentFile   Record
	ChangeRequest Record
	Review        Record
	Reviewer      Record
	Comment       Record
	CommentReply  Record
	GitInfo       Record
	Organization  Record
	Collection    Record
	AskAIResponse Record
	SearchResult  Record
	ImportResult  Record
)

func (s Space) ID() string         { return Record(s).String("id") }
func (s Space) Title() string      { return Record(s).String("title") }
func (s Space) Visibility() string { return Record(s).String("visibility") }
func (s Space) AppURL() string     { return Record(s).Object("urls").String("app") }

func (p Page) ID() string    { return Record(p).String("id") }
func (p Page) Title() string { return Record(p).String("title") }
func (p Page) Kind() string  { return Record(p).String("kind") }
func (p Page) Path() string  { return Record(p).String("path") }
func (p Page) Slug() string  { return Record(p).String("slug") }

func (c SpaceContent) ID() string { return Record(c).String("id") }

// Pages returns the top-level pages of the revision.
func (c SpaceContent) Pages() []Page {
	raw, _ := c["pages"].([]any)
	out := make([]Page, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func (l PageLink) URL() string { return Record(l).String("url") }

func (f ContentFile) ID() string          { return Record(f).String("id") }
func (f ContentFile) Name() string        { return Record(f).String("name") }
func (f ContentFile) ContentType() string { return Record(f).String("contentType") }
func (f ContentFile) DownloadURL() string { return Record(f).String("downloadURL") }

func (c ChangeRequest) ID() string      { return Record(c).String("id") }
func (c ChangeRequest) Number() int64   { return Record(c).Int("number") }
func (c ChangeRequest) Status() string  { return Record(c).String("status") }
func (c ChangeRequest) Subject() string { return Record(c).String("subject") }

func (r Review) ID() string     { return Record(r).String("id") }
func (r Review) Status() string { return Record(r).String("status") }

func (r Reviewer) ID() string { return Record(r).String("id") }

func (c Comment) ID() string   { return Record(c).String("id") }
func (c Comment) Body() string { return Record(c).String("body") }

func (c CommentReply) ID() string   { return Record(c).String("id") }
func (c CommentReply) Body() string { return Record(c).String("body") }

func (g GitInfo) URL() string      { return Record(g).String("url") }
func (g GitInfo) Branch() string   { return Record(g).String("branch") }
func (g GitInfo) Provider() string { return Record(g).String("provider") }

func (o Organization) ID() string    { return Record(o).String("id") }
func (o Organization) Title() string { return Record(o).String("title") }

func (c Collection) ID() string    { return Record(c).String("id") }
func (c Collection) Title() string { return Record(c).String("title") }

func (a AskAIResponse) Answer() string { return Record(a).String("answer") }

func (s SearchResult) ID() string    { return Record(s).String("id") }
func (s SearchResult) Title() string { return Record(s).String("title") }
func (s SearchResult) Path() string  { return Record(s).String("path") }

func (i ImportResult) ID() string     { return Record(i).String("id") }
func (i ImportResult) Status() string { return Record(i).String("status") }

// NextPage points at the following page of a List.
type NextPage struct {
	Page string `json:"page"`
}

// List is one page of a paginated collection. Fields other than items and
// next are kept in Extra and written back on encode.
type List[T any] struct {
	Items []T
	Next  *NextPage
	Extra map[string]json.RawMessage
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*l = List[T]{}
	if raw, ok := fields["items"]; ok {
		if err := decodeJSON(raw, &l.Items); err != nil {
			return err
		}
		delete(fields, "items")
	}
	if raw, ok := fields["next"]; ok {
		if err := json.Unmarshal(raw, &l.Next); err != nil {
			return err
		}
		delete(fields, "next")
	}
	if len(fields) > 0 {
		l.Extra = fields
	}
	return nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Extra)+2)
	for k, v := range l.Extra {
		out[k] = v
	}
	items := l.Items
	if items == nil {
		items = []T{}
	}
	out["items"] = items
	if l.Next != nil {
		out["next"] = l.Next
	}
	return MarshalJSON(out, "")
}

// MarshalJSON encodes v without HTML escaping, indenting nested levels with
// indent when it is non-empty. The trailing newline is dropped.
func MarshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
