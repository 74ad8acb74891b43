// Package delivery contains the delivery aggregate for the dispatch domain.
//
// A Delivery tracks the fulfillment of one order by a delivery partner through
// a fixed lifecycle:
//
//	PENDING -> ASSIGNED -> ACCEPTED -> PICKED_UP -> IN_TRANSIT -> DELIVERED
//
// CANCELLED is reachable from every status before IN_TRANSIT and always carries
// a reason. FAILED is reachable from PICKED_UP and IN_TRANSIT, RETURNED from
// IN_TRANSIT. DELIVERED, CANCELLED, FAILED, and RETURNED are terminal.
//
// Every transition appends an immutable TrackingEvent, so the aggregate carries
// its own audit trail.
package delivery
