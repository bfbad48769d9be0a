package order

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrReasonIsRequired is returned when a cancellation request carries an empty reason.
	ErrReasonIsRequired = errors.New("cancellation reason is required")
)

// Order represents a customer's purchase in the system. It is the aggregate root
// that manages the order lifecycle from placement through processing and shipping
// to completion or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference a valid owning customer
//   - Must have a non-empty delivery street
//   - Status transitions follow the defined business rules (see Status)
//   - A cancellation request always carries a non-empty reason
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. The version field supports
// optimistic concurrency control in the persistence layer: concurrent
// read-modify-write sequences on the same order are detected on save.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the customer who owns the order
	customerID kernel.UUID

	// street is the delivery street address
	street string

	// note is an optional free-text instruction from the customer
	note string

	// status represents the current state in the order lifecycle
	status Status

	// reasonCancel holds the composed cancellation reason, empty until
	// a cancellation is requested
	reasonCancel string

	// createdAt and updatedAt track the order lifecycle for date-range queries
	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency token, bumped on every persisted update
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// (besides RestoreOrder for persistence) to create a valid Order, ensuring all
// business invariants are maintained.
//
// The order starts in Pending status with version 1 and no cancellation reason.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: Identifier of the owning customer (must be valid UUID)
//   - street: Delivery street address (must not be empty)
//   - note: Optional free-text note (may be empty)
//
// Example:
//
//	orderID := kernel.NewUUID()
//	order, err := NewOrder(orderID, customerID, "12 Main Street", "leave at the door")
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, customerID kernel.UUID, street string, note string) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:        Pending,
		note:          note,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setStreet(street),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state without applying the
// creation defaults. Used by repositories when loading aggregates; all values
// are still validated so corrupted rows cannot produce an invalid aggregate.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	street string,
	note string,
	status Status,
	reasonCancel string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	order := &Order{
		note:          note,
		reasonCancel:  reasonCancel,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setStreet(street),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = status

	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version is invalid", ErrOrderIsNotConstructed)
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// This prevents bypassing validation by directly instantiating the struct.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a constructor
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who owns the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Street returns the delivery street address.
func (o *Order) Street() string {
	return o.street
}

// Note returns the optional customer note.
func (o *Order) Note() string {
	return o.note
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ReasonCancel returns the recorded cancellation reason.
// Empty until a cancellation has been requested.
func (o *Order) ReasonCancel() string {
	return o.reasonCancel
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last recorded change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency token of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// IsOwnedBy reports whether the order belongs to the given customer.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// RequestCancel records a customer-initiated cancellation request.
//
// This method enforces the following business rules:
//   - The order must be in Pending, Confirmed or Processing status
//   - The reason must not be empty
//
// On success the order moves to RequestCancel status and the reason is
// recorded for admin review. Ownership is checked by the caller, which knows
// the requesting customer's identity.
//
// Returns:
//   - nil on success
//   - ErrReasonIsRequired if the reason is empty
//   - error naming the offending status if the transition is not allowed
//
// Example:
//
//	err := order.RequestCancel("Changed my mind")
//	if err != nil {
//	    // Order was not in a cancellable status
//	}
func (o *Order) RequestCancel(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	if err := o.status.ValidateRequestCancel(); err != nil {
		return err
	}

	o.status = RequestCancel
	o.reasonCancel = reason
	o.touch()
	return nil
}

// ChangeStatus moves the order to the target status.
//
// This method enforces the transition table defined on Status. It is used by
// admin/shipper status updates, including the resolution of cancellation
// requests (RequestCancel -> Cancelled to accept, RequestCancel -> Processing
// to reject and resume).
//
// Returns:
//   - nil on success
//   - error naming both statuses if the transition is not allowed
func (o *Order) ChangeStatus(target Status) error {
	if err := o.status.ValidateTransitionTo(target); err != nil {
		return err
	}

	// A rejected cancellation request resumes processing with a clean slate.
	if o.status == RequestCancel && target == Processing {
		o.reasonCancel = ""
	}

	o.status = target
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the owning customer reference.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setStreet validates and sets the delivery street address.
// This is a private method used only during construction.
func (o *Order) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	o.street = street
	return nil
}
