// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PartnerRepoFactory provides access to the partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// MergeRecordRepoFactory provides access to the merge record repository within a transaction.
	MergeRecordRepoFactory interface {
		MergeRecordRepository() ports.MergeRecordRepository
	}

	// MergeUoW manages transactions for the clustering and merge-commit flow.
	// Covers the order updates and the merge record written with them.
	MergeUoW interface {
		TxManager
		OrderRepoFactory
		MergeRecordRepoFactory
	}

	// MergeUoWFactory creates new merge unit of work instances.
	MergeUoWFactory interface {
		Create() MergeUoW
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// PartnerUoW manages transactions for partner-only operations.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// AssignmentUoW manages transactions spanning delivery and partner aggregates.
	// Used by the assignment flow, which must update both atomically.
	AssignmentUoW interface {
		TxManager
		DeliveryRepoFactory
		PartnerRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)
