package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageLimit = 100

type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

type PaginationLinks struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// ParsePagination reads page and limit from the query string, falling back
// to page 1 and defaultLimit for missing or invalid values.
func ParsePagination(ctx *gin.Context, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationMeta{Page: page, Limit: limit, TotalItems: total, TotalPages: totalPages}
}

// BuildLinks rebuilds the request URL for the current, next and previous
// pages, keeping every other query parameter.
func BuildLinks(ctx *gin.Context, meta PaginationMeta) PaginationLinks {
	pageURL := func(page int) string {
		q := url.Values{}
		for k, v := range ctx.Request.URL.Query() {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(meta.Limit))
		return fmt.Sprintf("%s?%s", ctx.Request.URL.Path, q.Encode())
	}

	links := PaginationLinks{Self: pageURL(meta.Page)}
	if meta.Page < meta.TotalPages {
		links.Next = pageURL(meta.Page + 1)
	}
	if meta.Page > 1 {
		links.Prev = pageURL(meta.Page - 1)
	}
	return links
}
