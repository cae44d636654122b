// Package handlers adapts HTTP requests to the service layer: bind, call,
// render the envelope. No business logic lives here.
package handlers

import (
	"delivery-backend/pagination"
	"delivery-backend/response"
)

func paged(items interface{}, p pagination.Params, total int64) response.Page {
	return response.Page{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: total,
		TotalPages: p.TotalPages(total),
	}
}
