package httpx

import (
	"errors"
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = math.MaxInt32
)

var ErrInvalidPage = errors.New("httpx: page and limit must be positive integers")

// ParsePage reads the page and limit query parameters. Missing values take
// their defaults; a limit above MaxPageLimit and a page above MaxPage are
// clamped.
func ParsePage(r *http.Request) (page, limit int, err error) {
	page, limit = 1, DefaultPageLimit
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, ErrInvalidPage
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			return 0, 0, ErrInvalidPage
		}
	}
	return min(page, MaxPage), min(limit, MaxPageLimit), nil
}
