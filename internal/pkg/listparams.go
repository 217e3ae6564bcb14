package pkg

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/databroker-go/databroker/internal/domain"
)

const defaultSort = "id:desc"

// ListDefaults caps the window a client may request. PageSize is applied
// when the client sends no page_size parameter; MaxPageSize bounds both
// explicit page sizes and requests for "everything" (page_size=0).
type ListDefaults struct {
	PageSize    int
	MaxPageSize int
}

// reservedParams lists query parameter names used for windowing/sorting, not for filtering.
var reservedParams = map[string]bool{
	"start_index": true,
	"page_size":   true,
	"sort":        true,
}

// ParseListRequest extracts a broker ListRequest from query parameters.
//
//	start_index=20&page_size=10&sort=name:asc&company=Acme&name__like=smi
//
// Unknown parameters become filter clauses: a "__like" suffix produces a
// like clause, everything else an equality clause. Field validation is the
// filter strategy's job, so nothing is rejected here.
func ParseListRequest(c *gin.Context, defaults ListDefaults) *domain.ListRequest {
	startIndex, _ := strconv.Atoi(c.DefaultQuery("start_index", "0"))
	if startIndex < 0 {
		startIndex = 0
	}

	pageSize := defaults.PageSize
	if raw := c.Query("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			pageSize = v
		}
	}
	if defaults.MaxPageSize > 0 && (pageSize == 0 || pageSize > defaults.MaxPageSize) {
		pageSize = defaults.MaxPageSize
	}

	sortField, sortDescending := parseSort(c.DefaultQuery("sort", defaultSort))

	// Remaining query parameters are filter clauses, in key order so the
	// resulting SQL is deterministic.
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		if reservedParams[key] {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var filters []domain.Filter
	for _, key := range keys {
		values := query[key]
		if len(values) == 0 || values[0] == "" {
			continue
		}
		if field, ok := strings.CutSuffix(key, "__like"); ok {
			filters = append(filters, domain.Filter{Field: field, Op: domain.FilterLike, Value: values[0]})
		} else {
			filters = append(filters, domain.Filter{Field: key, Op: domain.FilterEquals, Value: values[0]})
		}
	}

	return &domain.ListRequest{
		StartIndex:     startIndex,
		PageSize:       pageSize,
		SortField:      sortField,
		SortDescending: sortDescending,
		Filters:        filters,
	}
}

// parseSort splits a "field:direction" value. A missing or invalid direction
// means ascending; an empty field disables sorting.
func parseSort(s string) (field string, descending bool) {
	fieldPart, dirPart, _ := strings.Cut(s, ":")
	field = strings.TrimSpace(fieldPart)
	descending = strings.EqualFold(strings.TrimSpace(dirPart), "desc")
	return field, descending
}
