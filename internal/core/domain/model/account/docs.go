// Package account provides the read-side user and customer model consumed by
// order management: role assignments for authorization, device tokens for push
// notification fan-out, and the customer-to-user link for ownership checks.
//
// Account lifecycle (registration, role grants, token registration) is owned
// by a separate service; this package intentionally exposes no mutations.
package account
