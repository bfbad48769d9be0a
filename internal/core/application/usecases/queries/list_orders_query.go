// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Query handlers read the database directly and return flat response models;
// they never load aggregates or modify state.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

const (
	// DefaultPageSize is used when the requested page size is not positive.
	DefaultPageSize = 10

	// MaxPageSize caps the page size to keep result sets bounded.
	MaxPageSize = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a page of orders for the admin listing.
// All filters are optional; orders are returned newest first.
//
// Example:
//
//	query := NewListOrdersQuery(2, 20)
//	query = query.WithStatus(order.RequestCancel)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Showing %d of %d orders\n", len(page.Items), page.TotalCount)
type ListOrdersQuery struct {
	page     int
	pageSize int

	keyWord    string
	status     order.Status
	customerID kernel.UUID
	fromDate   time.Time
	toDate     time.Time

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates an admin order listing query.
// Page numbers start at 1; non-positive values fall back to the first page.
// Non-positive page sizes fall back to DefaultPageSize, oversized ones are
// capped at MaxPageSize.
func NewListOrdersQuery(page, pageSize int) ListOrdersQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return ListOrdersQuery{
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}
}

// WithKeyWord filters orders whose street, note or cancellation reason
// contains the given text, case-insensitively.
func (q ListOrdersQuery) WithKeyWord(keyWord string) ListOrdersQuery {
	q.keyWord = keyWord
	return q
}

// WithStatus filters orders by lifecycle status.
func (q ListOrdersQuery) WithStatus(status order.Status) ListOrdersQuery {
	q.status = status
	return q
}

// WithCustomerID filters orders by owning customer.
func (q ListOrdersQuery) WithCustomerID(customerID kernel.UUID) ListOrdersQuery {
	q.customerID = customerID
	return q
}

// WithDateRange filters orders created within the given range. Either bound
// may be the zero time to leave that side open.
func (q ListOrdersQuery) WithDateRange(fromDate, toDate time.Time) ListOrdersQuery {
	q.fromDate = fromDate
	q.toDate = toDate
	return q
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the requested page number, starting at 1.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the normalized page size.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// KeyWord returns the free-text filter, empty when unset.
func (q ListOrdersQuery) KeyWord() string {
	return q.keyWord
}

// Status returns the status filter, order.Unknown when unset.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

// CustomerID returns the customer filter, the zero UUID when unset.
func (q ListOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// FromDate returns the lower creation-time bound, zero when unset.
func (q ListOrdersQuery) FromDate() time.Time {
	return q.fromDate
}

// ToDate returns the upper creation-time bound, zero when unset.
func (q ListOrdersQuery) ToDate() time.Time {
	return q.toDate
}

// OrderResponse is the flat read model returned by order queries.
type OrderResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	Street       string
	Note         string
	Status       string
	ReasonCancel string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PageResult is a single page of order responses together with the total
// number of rows matching the filters.
type PageResult struct {
	Items      []OrderResponse
	TotalCount int64
	Page       int
	PageSize   int
}
