// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order management system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - CancelRequestNotificationComposer: plans the admin notification fan-out
//     for customer cancellation requests
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
