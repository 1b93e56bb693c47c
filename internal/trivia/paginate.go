package trivia

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Paginate returns the 1-based page of items, QuestionsPerPage at a time.
// Pages below 1 or past the end yield an empty, non-nil slice.
func Paginate[T any](items []T, page int) []T {
	pages := (len(items) + QuestionsPerPage - 1) / QuestionsPerPage
	if page < 1 || page > pages {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}

// PageFromQuery reads the page query parameter, falling back to 1 when it
// is absent or not an integer. Integers too large for int saturate so that
// they still land outside the available pages.
func PageFromQuery(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	switch {
	case err == nil:
		return page
	case errors.Is(err, strconv.ErrRange) && strings.HasPrefix(raw, "-"):
		return 0
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt
	default:
		return 1
	}
}
