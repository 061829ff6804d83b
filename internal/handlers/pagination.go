package handlers

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// parsePaginationParams reads page (1-based) and page_size, capping page_size at maxSize.
func parsePaginationParams(r *http.Request, defaultSize, maxSize int) (page, pageSize int, err error) {
	page, pageSize = 1, defaultSize

	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, badRequest("invalid_page", "page must be a positive integer")
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		pageSize, err = strconv.Atoi(v)
		if err != nil || pageSize < 1 {
			return 0, 0, badRequest("invalid_page_size", "page_size must be a positive integer")
		}
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize, nil
}

func newPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

func writePaginatedResponse(w http.ResponseWriter, data interface{}, page, pageSize, total int) {
	writeJSON(w, http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: newPagination(page, pageSize, total),
	})
}

// parseBoolParam returns nil when the query parameter is absent.
func parseBoolParam(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, badRequest("invalid_"+name, name+" must be true or false")
	}
	return &b, nil
}
