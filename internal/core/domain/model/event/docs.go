// Package event defines the domain events that accompany order status changes
// and their JSON wire codec.
//
// Events form a closed union over four variants:
//   - Created: an order was accepted with status NEW
//   - Delivered: an order reached its destination
//   - Cancelled: an order was cancelled (reason attached)
//   - Error: order processing failed (failure message attached)
//
// Every variant shares the same Payload envelope: a globally unique event id
// (the idempotency key consumers dedup on), the order number, the item
// snapshot, customer and address details, an optional reason, and a creation
// timestamp.
//
// Marshal and Decode translate between the union and its JSON wire form.
// Decode is deliberately tolerant of missing optional fields so that a
// slightly degraded message still produces a usable event instead of a parse
// failure; substituted sentinels are reported as warnings for the caller to
// log.
package event
