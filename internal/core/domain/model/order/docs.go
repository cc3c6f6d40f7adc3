// Package order provides domain entities and business logic for order management.
// It implements the Order aggregate root with lifecycle management and state
// transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, total, and lifecycle
//   - Item: A line of an order with a derived line total
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a unique order number, a customer code, and at least one item
//   - Item quantities and unit prices must be positive; line totals are derived
//   - The order total always equals the sum of its line totals
//   - Order status follows a defined workflow:
//     Created -> Prepared -> Dispatched -> Delivered, with Cancelled reachable
//     from every non-terminal status; Delivered and Cancelled are terminal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
