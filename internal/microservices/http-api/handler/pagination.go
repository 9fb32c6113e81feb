package handler

import (
	"net/url"
	"strconv"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// pageParams reads limit and offset from the query string.
func pageParams(c *gin.Context) (repository.Page, error) {
	page := repository.Page{Limit: defaultLimit}
	ve := &service.ValidationError{}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			ve.Add("limit", "A positive integer is required.")
		} else {
			page.Limit = min(n, maxLimit)
		}
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ve.Add("offset", "A non-negative integer is required.")
		} else {
			page.Offset = n
		}
	}
	return page, ve.OrNil()
}

// paginate wraps results in the collection envelope with absolute next/previous links.
func paginate[T any](c *gin.Context, page repository.Page, total int64, results []T) dto.Page[T] {
	out := dto.Page[T]{Count: total, Results: results}
	if out.Results == nil {
		out.Results = []T{}
	}

	// offset can be anything up to MaxInt; compare without adding to it
	if int64(page.Offset) < total-int64(page.Limit) {
		next := pageURL(c, page.Limit, page.Offset+page.Limit)
		out.Next = &next
	}
	if page.Offset > 0 {
		prev := pageURL(c, page.Limit, max(page.Offset-page.Limit, 0))
		out.Previous = &prev
	}
	return out
}

func pageURL(c *gin.Context, limit, offset int) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	q := c.Request.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
