// Package partner contains the delivery partner aggregate for the dispatch domain.
//
// A DeliveryPartner is a courier who picks up and delivers orders. The aggregate
// tracks the partner's position, availability, concurrent workload, and lifetime
// delivery statistics, and enforces the capacity rules used by the matching and
// assignment flows:
//
//   - A partner carries at most MaxConcurrentOrders orders at once
//   - Filling the last free slot flips availability from Available to Busy
//   - Finishing an order below capacity flips Busy back to Available
//   - CompletionRate and Rating feed the partner ranking used for auto-assignment
//
// The aggregate carries an optimistic-locking version so concurrent assignment
// attempts against the same partner can be detected in the persistence layer.
package partner
