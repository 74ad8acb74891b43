package services

import (
	"sort"

	"dispatch/internal/core/domain/model/order"
)

// DefaultMaxMergeDistanceKm is the default radius within which orders may join a cluster.
const DefaultMaxMergeDistanceKm = 2.0

// MergeCluster is an ephemeral grouping of orders considered for a merge.
// Clusters exist only while scoring and deciding; they are never persisted.
type MergeCluster struct {
	// Orders are the cluster members, seed first
	Orders []*order.Order
}

// Size returns the number of cluster members.
func (c MergeCluster) Size() int {
	return len(c.Orders)
}

// OrderClusterer is a domain service that partitions pending orders into
// candidate merge clusters by drop-off proximity.
//
// The algorithm is deterministic, greedy, and single pass:
//  1. Sort the input by placement time ascending (ties broken by order id).
//  2. Pop the first unprocessed order as the cluster seed.
//  3. Every remaining order whose drop-off lies within maxDistanceKm of the
//     seed's drop-off joins the cluster and leaves the pool.
//  4. Repeat until the pool is empty.
//
// The result is order-of-input sensitive in adversarial layouts and is not a
// globally optimal clustering; it trades optimality for a cheap single pass.
// Callers are expected to pass same-restaurant, still-unmerged orders; orders
// that are not mergeable are skipped.
type OrderClusterer struct {
	maxDistanceKm float64
}

// NewOrderClusterer creates an OrderClusterer with the given merge radius.
// A non-positive radius falls back to the default.
func NewOrderClusterer(maxDistanceKm float64) OrderClusterer {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultMaxMergeDistanceKm
	}
	return OrderClusterer{maxDistanceKm: maxDistanceKm}
}

// MaxDistanceKm returns the configured merge radius.
func (c OrderClusterer) MaxDistanceKm() float64 {
	return c.maxDistanceKm
}

// Cluster partitions the given orders into candidate merge clusters.
// Single-member clusters are included in the result; downstream decision logic
// ignores them since a merge needs at least two orders. Orders that are already
// merged or in a terminal status are excluded from the pool.
func (c OrderClusterer) Cluster(orders []*order.Order) []MergeCluster {
	pool := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Validate() == nil && o.IsMergeable() {
			pool = append(pool, o)
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].PlacedAt().Equal(pool[j].PlacedAt()) {
			return pool[i].ID().String() < pool[j].ID().String()
		}
		return pool[i].PlacedAt().Before(pool[j].PlacedAt())
	})

	var clusters []MergeCluster
	for len(pool) > 0 {
		seed := pool[0]
		cluster := MergeCluster{Orders: []*order.Order{seed}}

		remaining := make([]*order.Order, 0, len(pool)-1)
		for _, candidate := range pool[1:] {
			if seed.Dropoff().DistanceKm(candidate.Dropoff()) <= c.maxDistanceKm {
				cluster.Orders = append(cluster.Orders, candidate)
			} else {
				remaining = append(remaining, candidate)
			}
		}
		pool = remaining

		clusters = append(clusters, cluster)
	}

	return clusters
}
