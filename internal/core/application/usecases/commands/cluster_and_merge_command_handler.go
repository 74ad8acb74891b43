package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

const (
	// DefaultMergeScoreThreshold is the minimum efficiency score a cluster must
	// exceed for its merge to commit.
	DefaultMergeScoreThreshold = 0.7
	// DefaultMaxOrdersPerMerge caps the size of a committed merge group.
	DefaultMaxOrdersPerMerge = 5
	// DefaultClusteringLookback bounds how far back the pending-order pool reaches.
	DefaultClusteringLookback = 30 * time.Minute
	// savingsMinutesPerExtraOrder is the heuristic time saving per merged-in order.
	savingsMinutesPerExtraOrder = 12
)

// ClusterAndMergeCommandHandler runs the consolidation pipeline for one
// restaurant: pull the pending pool, cluster by drop-off proximity, score each
// cluster, and commit the merges that clear the threshold.
//
// Commit rules:
//   - Cluster size must be within [2, maxOrdersPerMerge]. Oversized clusters
//     are rejected whole rather than truncated, so no order is silently
//     dropped from consideration.
//   - The efficiency score must exceed the threshold.
//
// A commit updates every member order, writes one merge record in the same
// transaction, and publishes a merge-completed event after the transaction.
// Rejected clusters leave their orders untouched for a later pass; merged
// orders never re-enter the pool, so repeating the command is a no-op.
type ClusterAndMergeCommandHandler struct {
	uowFactory        MergeUoWFactory
	publisher         ports.EventPublisher
	clusterer         services.OrderClusterer
	scorer            services.MergeEfficiencyScorer
	scoreThreshold    float64
	maxOrdersPerMerge int
	lookback          time.Duration
	log               *slog.Logger
}

// NewClusterAndMergeCommandHandler creates a handler with default threshold,
// cap, and lookback window.
func NewClusterAndMergeCommandHandler(
	uowFactory MergeUoWFactory,
	publisher ports.EventPublisher,
	clusterer services.OrderClusterer,
	log *slog.Logger,
) ClusterAndMergeCommandHandler {
	return ClusterAndMergeCommandHandler{
		uowFactory:        uowFactory,
		publisher:         publisher,
		clusterer:         clusterer,
		scorer:            services.NewMergeEfficiencyScorer(),
		scoreThreshold:    DefaultMergeScoreThreshold,
		maxOrdersPerMerge: DefaultMaxOrdersPerMerge,
		lookback:          DefaultClusteringLookback,
		log:               log,
	}
}

// Handle runs one consolidation pass and returns the merge records committed.
// An empty result means no cluster qualified, which is a normal outcome.
func (h ClusterAndMergeCommandHandler) Handle(
	ctx context.Context, command ClusterAndMergeCommand,
) ([]*order.MergeRecord, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	since := time.Now().Add(-h.lookback)
	pending, err := orderRepo.GetPendingByRestaurant(ctx, command.RestaurantID(), since)
	if err != nil {
		return nil, err
	}

	var records []*order.MergeRecord
	for _, cluster := range h.clusterer.Cluster(pending) {
		if cluster.Size() < 2 || cluster.Size() > h.maxOrdersPerMerge {
			continue
		}

		score := h.scorer.Score(cluster)
		if score <= h.scoreThreshold {
			continue
		}

		record, err := h.commitMerge(ctx, uow, cluster, score)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, record := range records {
		h.publishMergeCompleted(ctx, record)
	}

	return records, nil
}

// commitMerge stamps the merge fields onto every member order and writes the
// audit record, all inside the caller's transaction.
func (h ClusterAndMergeCommandHandler) commitMerge(
	ctx context.Context, uow MergeUoW, cluster services.MergeCluster, score float64,
) (*order.MergeRecord, error) {
	groupID := kernel.NewUUID()

	memberIDs := make([]kernel.UUID, len(cluster.Orders))
	for i, member := range cluster.Orders {
		memberIDs[i] = member.ID()
	}

	orderRepo := uow.OrderRepository()
	for i, member := range cluster.Orders {
		siblings := make([]kernel.UUID, 0, len(memberIDs)-1)
		siblings = append(siblings, memberIDs[:i]...)
		siblings = append(siblings, memberIDs[i+1:]...)

		if err := member.CommitMerge(groupID, siblings); err != nil {
			return nil, err
		}
		if err := orderRepo.Update(ctx, member); err != nil {
			return nil, err
		}
	}

	record, err := order.NewMergeRecord(groupID, memberIDs,
		cluster.Orders[0].RestaurantID(), score, time.Now())
	if err != nil {
		return nil, err
	}

	if err := uow.MergeRecordRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// publishMergeCompleted emits the merge event. Publishing is best effort: a
// failure is logged and never turns a committed merge into an error.
func (h ClusterAndMergeCommandHandler) publishMergeCompleted(ctx context.Context, record *order.MergeRecord) {
	orderIDs := make([]string, 0, len(record.OrderIDs()))
	for _, id := range record.OrderIDs() {
		orderIDs = append(orderIDs, id.String())
	}

	event := ports.MergeCompletedEvent{
		GroupID:                 record.GroupID().String(),
		OrderIDs:                orderIDs,
		RestaurantID:            record.RestaurantID().String(),
		Score:                   record.Score(),
		EstimatedSavingsMinutes: (len(orderIDs) - 1) * savingsMinutesPerExtraOrder,
		OccurredAt:              record.CreatedAt(),
	}

	if err := h.publisher.Publish(ctx, ports.TopicMergeCompleted, event); err != nil {
		h.log.WarnContext(ctx, "failed to publish merge-completed event",
			slog.String("groupId", event.GroupID), slog.Any("error", err))
	}
}
