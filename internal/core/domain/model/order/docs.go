// Package order provides domain entities and business logic for order management
// in the dispatch system. It implements the Order aggregate root with merge-group
// bookkeeping and the MergeRecord entity that captures committed consolidations.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, drop-off location, and merge state
//   - Status: The order status taxonomy with its terminal states
//   - MergeRecord: An immutable record of a committed merge group
//
// Key business rules:
//   - Orders must have valid identifiers and a constructed drop-off point
//   - An order belongs to at most one merge group at a time
//   - Merge fields are only set when a merge decision commits
//   - Terminal orders (Delivered, Cancelled, Rejected, Refunded) never change again
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
