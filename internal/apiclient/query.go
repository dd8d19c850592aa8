package apiclient

import (
	"net/url"
	"strconv"
)

// Query builds list-endpoint query strings, skipping unset filters.
type Query struct {
	values url.Values
}

// NewQuery starts an empty query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Int sets key when v is non-zero.
func (q *Query) Int(key string, v int) *Query {
	if v != 0 {
		q.values.Set(key, strconv.Itoa(v))
	}
	return q
}

// String sets key when v is non-empty.
func (q *Query) String(key, v string) *Query {
	if v != "" {
		q.values.Set(key, v)
	}
	return q
}

// Bool sets key when v is non-nil.
func (q *Query) Bool(key string, v *bool) *Query {
	if v != nil {
		q.values.Set(key, strconv.FormatBool(*v))
	}
	return q
}

// Values returns the encoded parameters.
func (q *Query) Values() url.Values {
	return q.values
}
