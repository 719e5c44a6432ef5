package utils

import (
	"net/http"
	"strconv"
)

type PageQuery struct {
	Page  int
	Limit int
}

// ParsePageQuery reads page/limit from the query string. Values that fail
// to parse or fall below 1 are sanitized to page 1, limit 10 rather than
// rejected.
func ParsePageQuery(r *http.Request) PageQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	return PageQuery{Page: page, Limit: limit}
}

// ParseBoolParam returns nil when the parameter is absent or empty, so
// callers can distinguish "no filter" from false.
func ParseBoolParam(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	val := raw == "true"
	return &val
}
