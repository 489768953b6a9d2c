// Package order provides domain entities and business logic for the order
// lifecycle. It implements the Order aggregate root with its status state
// machine, append-only status history, and the domain events that accompany
// customer-visible status changes.
//
// The package includes:
//   - Order: the aggregate root managing identity, the item snapshot, and
//     the lifecycle
//   - Status: a state machine over NEW, IN_PROCESS, PAYMENT_REJECTED,
//     DELIVERED, CANCELLED and ERROR
//   - Item, Customer, Address: validated value objects captured at checkout
//   - HistoryEntry: one audit row per executed transition
//
// Key business rules:
//   - the item snapshot is non-empty and immutable after creation
//   - PAYMENT_REJECTED, DELIVERED, CANCELLED and ERROR are terminal; no
//     transition may leave them
//   - repeating the current status is a no-op, not an error
//   - only DELIVERED, CANCELLED and ERROR transitions (and creation into
//     NEW) record a domain event; IN_PROCESS is silent
//
// The aggregate is I/O-free: it accumulates uncommitted history entries and
// domain events, and the orchestration layer persists both atomically with
// the order row.
package order
