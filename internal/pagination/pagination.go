// Package pagination переводит постраничную нумерацию интерфейса (page)
// в смещение внешнего API (skip) и обратно.
package pagination

// Meta - метаданные списка в ответе внешнего API.
type Meta struct {
	Total      int `json:"total"`
	Count      int `json:"count"`
	PageSize   int `json:"pageSize"`
	Skip       int `json:"skip"`
	TotalPages int `json:"totalPages"`
}

// Skip - параметры запроса в терминах смещения.
type Skip struct {
	Skip     int `json:"skip"`
	PageSize int `json:"pageSize"`
}

// Page - параметры запроса в терминах номера страницы (с 1).
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Window - производные поля страницы, добавляемые к ответу со списком.
type Window struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// PageToSkip переводит номер страницы в смещение.
func PageToSkip(page, pageSize int) Skip {
	return Skip{
		Skip:     (page - 1) * pageSize,
		PageSize: pageSize,
	}
}

// SkipToPage переводит смещение в номер страницы. При pageSize <= 0 страница равна 1.
func SkipToPage(skip, pageSize int) Page {
	if pageSize <= 0 {
		return Page{Page: 1, PageSize: pageSize}
	}
	return Page{
		Page:     floorDiv(skip, pageSize) + 1,
		PageSize: pageSize,
	}
}

// Attach вычисляет page, pageSize и total по метаданным списка.
func Attach(meta Meta) Window {
	return Window{
		Page:     SkipToPage(meta.Skip, meta.PageSize).Page,
		PageSize: meta.PageSize,
		Total:    meta.Total,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
