package types

// Filter - разобранные параметры списковых запросов.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination - метаданные страницы в ответе списка.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// http://localhost:8080/api/requests?search=Ромашка&sort[created_at]=desc&filter[status]=Новая&limit=10&offset=0
