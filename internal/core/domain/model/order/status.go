package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipping ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──────> RequestCancel ──> Cancelled
//	   │            │             │              │
//	   └────────────┴─────────────┘              └──> Processing (request rejected)
//	          (admin cancellation)
//
// A customer may only request cancellation from Pending, Confirmed or
// Processing. Completed and Cancelled are terminal.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	// The order is waiting for confirmation.
	Pending

	// Confirmed indicates the order has been accepted and is queued for processing.
	Confirmed

	// Processing indicates the order is being prepared for shipment.
	Processing

	// Shipping indicates the order has been handed to a shipper.
	Shipping

	// Completed indicates the order has been delivered.
	// This is a final state with no further transitions allowed.
	Completed

	// RequestCancel indicates the customer asked to cancel the order
	// and the request is awaiting admin review.
	RequestCancel

	// Cancelled indicates the order was cancelled.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Pending:       "Pending",
		Confirmed:     "Confirmed",
		Processing:    "Processing",
		Shipping:      "Shipping",
		Completed:     "Completed",
		RequestCancel: "RequestCancel",
		Cancelled:     "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:       "Pending",
		Confirmed:     "Confirmed",
		Processing:    "Processing",
		Shipping:      "Shipping",
		Completed:     "Completed",
		RequestCancel: "RequestCancel",
		Cancelled:     "Cancelled",
	}
}

// getAllowedTransitions returns the transition table for admin/shipper
// status updates. Customer cancellation requests are not part of this table;
// they go through ValidateRequestCancel.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:       {Confirmed, Cancelled},
		Confirmed:     {Processing, Cancelled},
		Processing:    {Shipping, Cancelled},
		Shipping:      {Completed},
		RequestCancel: {Cancelled, Processing},
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Processing, Shipping, Completed,
// RequestCancel, Cancelled. Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
//
// Example:
//
//	fmt.Println(order.Status()) // Output: "Processing"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
// Returns an error for unknown names, including "Unknown" itself.
// Used when statuses arrive as text from the API or query filters.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// ValidateTransitionTo checks whether an admin/shipper status update from the
// current status to target is allowed, without performing the transition.
//
// Returns:
//   - nil if the transition is allowed
//   - error naming both statuses if it is not
//
// Example:
//
//	if err := status.ValidateTransitionTo(order.Confirmed); err != nil {
//	    // Handle forbidden transition
//	    return err
//	}
func (s Status) ValidateTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return nil
		}
	}

	return errs.NewValueIsInvalidErrorWithCause(
		"status transition is invalid",
		fmt.Errorf("cannot change status from %s to %s", s.String(), target.String()),
	)
}

// ValidateRequestCancel checks whether a customer may request cancellation
// from the current status.
//
// Cancellation requests are allowed only from Pending, Confirmed and
// Processing. Any other status rejects the request with an error naming the
// offending status.
func (s Status) ValidateRequestCancel() error {
	if s != Pending && s != Confirmed && s != Processing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot request cancellation of an order in status %s", s.String()),
		)
	}
	return nil
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}
