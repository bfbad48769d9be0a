package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery retrieves a page of the given customer's own orders,
// newest first. The customer id comes from the authenticated identity, never
// from client input, so a customer can only ever see their own orders. The
// optional filters mirror the admin listing minus the customer filter.
type ListCustomerOrdersQuery struct {
	customerID kernel.UUID
	page       int
	pageSize   int

	keyWord  string
	status   order.Status
	fromDate time.Time
	toDate   time.Time

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery creates a customer order listing query.
// Page normalization follows the same rules as NewListOrdersQuery.
func NewListCustomerOrdersQuery(customerID kernel.UUID, page, pageSize int) (ListCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return ListCustomerOrdersQuery{
		customerID: customerID,
		page:       page,
		pageSize:   pageSize,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// WithKeyWord filters the customer's orders whose street, note or
// cancellation reason contains the given text, case-insensitively.
func (q ListCustomerOrdersQuery) WithKeyWord(keyWord string) ListCustomerOrdersQuery {
	q.keyWord = keyWord
	return q
}

// WithStatus filters the customer's orders by lifecycle status.
func (q ListCustomerOrdersQuery) WithStatus(status order.Status) ListCustomerOrdersQuery {
	q.status = status
	return q
}

// WithDateRange filters the customer's orders created within the given range.
// Either bound may be the zero time to leave that side open.
func (q ListCustomerOrdersQuery) WithDateRange(fromDate, toDate time.Time) ListCustomerOrdersQuery {
	q.fromDate = fromDate
	q.toDate = toDate
	return q
}

// Validate ensures the query was created through the constructor.
func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the owning customer whose orders are listed.
func (q ListCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// Page returns the requested page number, starting at 1.
func (q ListCustomerOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the normalized page size.
func (q ListCustomerOrdersQuery) PageSize() int {
	return q.pageSize
}

// KeyWord returns the free-text filter, empty when unset.
func (q ListCustomerOrdersQuery) KeyWord() string {
	return q.keyWord
}

// Status returns the status filter, order.Unknown when unset.
func (q ListCustomerOrdersQuery) Status() order.Status {
	return q.status
}

// FromDate returns the lower creation-time bound, zero when unset.
func (q ListCustomerOrdersQuery) FromDate() time.Time {
	return q.fromDate
}

// ToDate returns the upper creation-time bound, zero when unset.
func (q ListCustomerOrdersQuery) ToDate() time.Time {
	return q.toDate
}
