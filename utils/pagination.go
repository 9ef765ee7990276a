package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Pagination reads page/per_page query parameters with a caller-supplied
// default page size.
func Pagination(c *fiber.Ctx, defaultPerPage int) (page, perPage, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = c.QueryInt("per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage, (page - 1) * perPage
}

// TotalPages computes the page count for a result total.
func TotalPages(total int64, perPage int) int {
	return (int(total) + perPage - 1) / perPage
}
