// Package order provides domain entities and business logic for order management
// in the shop backend. It implements the Order aggregate root with lifecycle
// management and guarded state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, ownership, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, owning customer, and delivery street
//   - Order status follows a defined workflow from Pending to Completed or Cancelled
//   - Customers may request cancellation only from Pending, Confirmed or Processing
//   - A cancellation request records a non-empty reason for admin review
//   - Every persisted update bumps the aggregate version for optimistic locking
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
