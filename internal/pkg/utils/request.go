package utils

import (
	"net/http"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"strconv"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get("page")
	pageSizeStr := r.URL.Query().Get("page_size")
	if pageSizeStr == "" {
		pageSizeStr = r.URL.Query().Get("pageSize")
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// RequestTimezone reads the Timezone header used for slot-label formatting.
// Interval math never depends on it; stored instants are UTC.
func RequestTimezone(r *http.Request) string {
	tz := r.Header.Get(constvars.HeaderTimezone)
	if tz == "" {
		return constvars.DefaultTimezone
	}
	return tz
}
