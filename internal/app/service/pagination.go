package service

import "cmms/internal/core/domain"

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageOffset(page int) int {
	return (normalizePage(page) - 1) * domain.PageSize
}

// numPages never returns less than one so an empty listing still has page 1.
func numPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + domain.PageSize - 1) / domain.PageSize
}

func checkPage(page, total int) (int, error) {
	pages := numPages(total)
	if page > pages {
		return pages, domain.ErrPageNotFound
	}
	return pages, nil
}
