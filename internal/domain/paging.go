package domain

import (
	"net/url"
	"strconv"
)

// PageParams selects a page of a list endpoint. Sort entries use the
// backend's "field" or "field,desc" form.
type PageParams struct {
	Page int
	Size int
	Sort []string
}

// Query encodes the paging values onto q. Zero Page/Size are omitted so the
// backend defaults apply.
func (p PageParams) Query(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	for _, s := range p.Sort {
		q.Add("sort", s)
	}
}
