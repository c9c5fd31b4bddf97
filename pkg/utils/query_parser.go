package utils

import (
	"net/url"
	"strconv"
	"strings"

	"insurance-system/pkg/types"
)

// ParseFilterFromQuery разбирает search/sort/filter/limit/offset из query-строки.
// Ключи вида filter[status] и sort[created_at] собираются в карты,
// допустимость полей проверяется уже в репозитории.
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Sort:           make(map[string]string),
		Filter:         make(map[string]interface{}),
		Limit:          10,
		Offset:         0,
		Page:           1,
		WithPagination: true,
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if inner, ok := bracketKey(key, "filter"); ok {
			filter.Filter[inner] = values[0]
		}
		if inner, ok := bracketKey(key, "sort"); ok {
			filter.Sort[inner] = values[0]
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = o/filter.Limit + 1
			}
		}
	}
	// page учитывается, только если offset не задан явно.
	if pageStr := query.Get("page"); pageStr != "" && filter.Offset == 0 {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
			filter.Offset = (p - 1) * filter.Limit
		}
	}

	filter.Search = query.Get("search")

	if wp := query.Get("withPagination"); wp != "" {
		filter.WithPagination = wp != "false"
	}

	return filter
}

func bracketKey(key, prefix string) (string, bool) {
	if strings.HasPrefix(key, prefix+"[") && strings.HasSuffix(key, "]") {
		return key[len(prefix)+1 : len(key)-1], true
	}
	return "", false
}
