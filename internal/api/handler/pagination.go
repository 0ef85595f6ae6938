package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxPage      = 1_000_000
)

// pageParams reads page, limit and name from the query string. Values that
// are missing, non-numeric or not positive fall back to the defaults; page
// and limit are capped at maxPage and maxLimit, and name defaults to "*".
func pageParams(c echo.Context) (page, limit int, name string) {
	page = pageParam(c)
	limit = min(positiveInt(c.QueryParam("limit"), defaultLimit), maxLimit)
	name = c.QueryParam("name")
	if name == "" {
		name = "*"
	}
	return page, limit, name
}

// pageParam reads the page query value, capped at maxPage.
func pageParam(c echo.Context) int {
	return min(positiveInt(c.QueryParam("page"), defaultPage), maxPage)
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
