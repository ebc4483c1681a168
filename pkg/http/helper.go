package http

import (
	"net/http"
	"strconv"

	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
)

// ExtractPageLimit reads the page/limit query parameters used by every
// listing endpoint. Page numbering is 1-based.
func ExtractPageLimit(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	page := 1
	if s := query.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}
	if page < 1 {
		page = 1
	}

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}
	limit = config.NormalizePaginationLimit(limit)

	return page, limit, nil
}
