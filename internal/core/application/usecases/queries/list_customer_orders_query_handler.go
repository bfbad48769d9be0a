package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListCustomerOrdersQueryHandler retrieves pages of a single customer's orders.
type ListCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListCustomerOrdersQueryHandler creates a handler for customer order listing queries.
func NewListCustomerOrdersQueryHandler(db *gorm.DB) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{db: db}
}

// Handle executes the listing query for the query's customer, newest first.
// The optional filters are combined with AND on top of the mandatory
// customer scope.
func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) (PageResult, error) {
	if err := query.Validate(); err != nil {
		return PageResult{}, err
	}

	applyFilters := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("customer_id = ?", query.CustomerID().Bytes())
		return applyOrderFilters(tx, query.KeyWord(), query.Status(), query.FromDate(), query.ToDate())
	}

	var total int64
	if err := applyFilters(h.db.WithContext(ctx).Table("orders")).Count(&total).Error; err != nil {
		return PageResult{}, err
	}

	var rows []orderRow
	offset := (query.Page() - 1) * query.PageSize()
	err := applyFilters(h.db.WithContext(ctx).Table("orders")).
		Order("created_at DESC").
		Offset(offset).
		Limit(query.PageSize()).
		Find(&rows).Error
	if err != nil {
		return PageResult{}, err
	}

	items := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		item, mapErr := toOrderResponse(row)
		if mapErr != nil {
			return PageResult{}, mapErr
		}
		items = append(items, item)
	}

	return PageResult{
		Items:      items,
		TotalCount: total,
		Page:       query.Page(),
		PageSize:   query.PageSize(),
	}, nil
}
