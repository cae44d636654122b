// Package pagination is the shared paging/sorting contract for every listing
// endpoint: page/size/sort/order query params, a per-call sort allow-list, and
// one gorm scope applied uniformly regardless of entity.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultSize = 10
	MaxSize     = 100
	DefaultSort = "createdAt"
)

// sortColumns maps external sort field names to database columns. Anything
// outside this allow-list falls back to the default.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type Params struct {
	Page int    // 0-based
	Size int
	Sort string // validated external name
	Asc  bool   // default is descending
}

// Parse reads page, size, sort and order query parameters. Invalid values
// never fail the request; they fall back to defaults.
func Parse(c *gin.Context) Params {
	p := Params{Size: DefaultSize, Sort: DefaultSort}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		p.Size = v
		if p.Size > MaxSize {
			p.Size = MaxSize
		}
	}
	if sort := c.Query("sort"); sort != "" {
		if _, ok := sortColumns[sort]; ok {
			p.Sort = sort
		}
	}
	p.Asc = c.Query("order") == "asc"
	return p
}

// Scope applies ordering and the page window to a query.
func (p Params) Scope() func(*gorm.DB) *gorm.DB {
	return p.ScopeTable("")
}

// ScopeTable is Scope with the sort column qualified by a table name, for
// queries that join other audited tables and would otherwise hit an
// ambiguous-column error.
func (p Params) ScopeTable(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := sortColumns[p.Sort]
		if !ok {
			column = sortColumns[DefaultSort]
		}
		if table != "" {
			column = table + "." + column
		}
		dir := "desc"
		if p.Asc {
			dir = "asc"
		}
		return db.Order(column + " " + dir).Offset(p.Page * p.Size).Limit(p.Size)
	}
}

// TotalPages computes the page count for a total row count.
func (p Params) TotalPages(total int64) int {
	if p.Size <= 0 {
		return 0
	}
	pages := int(total) / p.Size
	if int(total)%p.Size != 0 {
		pages++
	}
	return pages
}

// List runs the count+find pair for a filtered query and returns the rows
// together with the total number of matching active records.
func List[T any](query *gorm.DB, p Params) ([]T, int64, error) {
	return ListTable[T](query, p, "")
}

// ListTable is List with a table-qualified sort column (see ScopeTable).
func ListTable[T any](query *gorm.DB, p Params, table string) ([]T, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []T
	if err := query.Session(&gorm.Session{}).Scopes(p.ScopeTable(table)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
