package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderRow is the raw database shape shared by the order query handlers.
type orderRow struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	Street       string
	Note         string
	Status       string
	ReasonCancel string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toOrderResponse(row orderRow) (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:           id,
		CustomerID:   customerID,
		Street:       row.Street,
		Note:         row.Note,
		Status:       row.Status,
		ReasonCancel: row.ReasonCancel,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// applyOrderFilters narrows an orders query by the filters shared between the
// admin and customer listings. The keyword matches street, note and
// cancellation reason, case-insensitively.
func applyOrderFilters(tx *gorm.DB, keyWord string, status order.Status, fromDate, toDate time.Time) *gorm.DB {
	if keyWord != "" {
		pattern := "%" + keyWord + "%"
		tx = tx.Where("street ILIKE ? OR note ILIKE ? OR reason_cancel ILIKE ?", pattern, pattern, pattern)
	}
	if status != order.Unknown {
		tx = tx.Where("status = ?", status.String())
	}
	if !fromDate.IsZero() {
		tx = tx.Where("created_at >= ?", fromDate)
	}
	if !toDate.IsZero() {
		tx = tx.Where("created_at <= ?", toDate)
	}
	return tx
}

// ListOrdersQueryHandler retrieves pages of orders for the admin listing.
// Reads the orders table directly, bypassing the aggregate layer.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query := NewListOrdersQuery(1, 20).WithStatus(order.RequestCancel)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for admin order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Filters are combined with AND, results
// are ordered newest first, and the total count reflects the filters, not the
// page.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (PageResult, error) {
	if err := query.Validate(); err != nil {
		return PageResult{}, err
	}

	applyFilters := func(tx *gorm.DB) *gorm.DB {
		tx = applyOrderFilters(tx, query.KeyWord(), query.Status(), query.FromDate(), query.ToDate())
		if customerID := query.CustomerID(); customerID.Validate() == nil {
			tx = tx.Where("customer_id = ?", customerID.Bytes())
		}
		return tx
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
