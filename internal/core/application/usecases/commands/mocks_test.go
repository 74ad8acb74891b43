package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetPendingByRestaurant(
	ctx context.Context, restaurantID kernel.UUID, since time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, restaurantID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetAllInBoundingBox(
	ctx context.Context, box kernel.BoundingBox,
) ([]*partner.DeliveryPartner, error) {
	args := m.Called(ctx, box)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*partner.DeliveryPartner), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllPending(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockMergeRecordRepository struct{ mock.Mock }

func (m *MockMergeRecordRepository) Add(ctx context.Context, record *order.MergeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMergeRecordRepository) Get(ctx context.Context, groupID kernel.UUID) (*order.MergeRecord, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.MergeRecord), args.Error(1)
}

func (m *MockMergeRecordRepository) GetAllByRestaurant(
	ctx context.Context, restaurantID kernel.UUID,
) ([]*order.MergeRecord, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.MergeRecord), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, event any) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

type MockMergeUoW struct{ mock.Mock }

func (m *MockMergeUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMergeUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMergeUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMergeUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockMergeUoW) MergeRecordRepository() ports.MergeRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.MergeRecordRepository)
}

type MockMergeUoWFactory struct{ mock.Mock }

func (m *MockMergeUoWFactory) Create() commands.MergeUoW {
	args := m.Called()
	return args.Get(0).(commands.MergeUoW)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockPartnerUoW struct{ mock.Mock }

func (m *MockPartnerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockAssignmentUoW struct{ mock.Mock }

func (m *MockAssignmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignmentUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockAssignmentUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}
