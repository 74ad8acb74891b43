// Package services contains stateless domain services for the dispatch domain.
//
// Three services drive order consolidation and partner matching:
//
//   - OrderClusterer groups same-restaurant pending orders into candidate merge
//     clusters by drop-off proximity (greedy, deterministic, single pass).
//   - MergeEfficiencyScorer rates a candidate cluster in [0, 1] from distance
//     savings, placement-time compatibility, and restaurant alignment.
//   - PartnerRanker orders eligible delivery partners best-first by rating,
//     current load, and completion rate, with deterministic tie-breaking.
//
// The services are pure: they read aggregates and compute results without
// mutating state or touching storage. Committing a merge or an assignment is
// the job of the application layer.
package services
