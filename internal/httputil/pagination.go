package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
)

// Pagination defaults shared by every listing endpoint.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is a validated offset/limit window over a newest-first listing.
type Page struct {
	Offset int
	Limit  int
}

// queryInt reads an integer query parameter, reporting ok=false for garbage.
func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// ParsePage reads offset and limit from the query string. Errors are keyed by
// parameter name.
func ParsePage(c *gin.Context) (Page, error) {
	offset, offsetOK := queryInt(c, "offset", 0)
	limit, limitOK := queryInt(c, "limit", DefaultLimit)

	errs := validation.Errors{}
	if !offsetOK || offset < 0 {
		errs["offset"] = validation.NewError("validation_offset", "must be a non-negative integer")
	}
	if !limitOK || limit < 1 || limit > MaxLimit {
		errs["limit"] = validation.NewError(
			"validation_limit", "must be an integer between 1 and "+strconv.Itoa(MaxLimit),
		)
	}
	if err := errs.Filter(); err != nil {
		return Page{}, err
	}
	return Page{Offset: offset, Limit: limit}, nil
}

// ParsePagination is ParsePage unpacked for handlers that pass offset and limit
// straight to a use case.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	page, err := ParsePage(c)
	if err != nil {
		return 0, 0, err
	}
	return page.Offset, page.Limit, nil
}
