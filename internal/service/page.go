package service

// Page describes one listing page. Listings are capped at the configured
// page size and ordered by id descending.
type Page struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func newPage(page, pageSize int, total int64) *Page {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Page{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
