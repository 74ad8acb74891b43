package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/asynqbus"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config, gormDB *gorm.DB, publisher *asynqbus.AsynqEventPublisher, logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAutoAssignDeliveryCommandHandler() commands.AutoAssignDeliveryCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateClusterAndMergeCommandHandler() commands.ClusterAndMergeCommandHandler {
	var f commands.MergeUoWFactory = FuncMergeUoWFactory(func() commands.MergeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClusterAndMergeCommandHandler(f, c.publisher, services.NewOrderClusterer(0), c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdatePartnerLocationCommandHandler() commands.UpdatePartnerLocationCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePartnerLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateFindPartnersNearQueryHandler() queries.FindPartnersNearQueryHandler {
	return queries.NewFindPartnersNearQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMergeCandidateRestaurantsQueryHandler() queries.GetMergeCandidateRestaurantsQueryHandler {
	return queries.NewGetMergeCandidateRestaurantsQueryHandler(c.gormDB)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncMergeUoWFactory func() commands.MergeUoW

func (f FuncMergeUoWFactory) Create() commands.MergeUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}
