package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func makeDelivery(t *testing.T) *Delivery {
	t.Helper()
	d, err := NewDelivery(kernel.NewUUID(), kernel.NewUUID(),
		mustGeoPoint(t, 40.7128, -74.0060), mustGeoPoint(t, 40.7306, -73.9866), time.Now())
	require.NoError(t, err)
	return d
}

func makeAssignedDelivery(t *testing.T) *Delivery {
	t.Helper()
	d := makeDelivery(t)
	require.NoError(t, d.Assign(kernel.NewUUID(), nil, time.Now()))
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create pending delivery with creation event", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		pickup := mustGeoPoint(t, 40.7128, -74.0060)
		dropoff := mustGeoPoint(t, 40.7306, -73.9866)
		createdAt := time.Now()

		d, err := NewDelivery(id, orderID, pickup, dropoff, createdAt)

		require.NoError(t, err)
		assert.NoError(t, d.Validate())
		assert.Equal(t, id, d.ID())
		assert.Equal(t, orderID, d.OrderID())
		pickupEqual, err := pickup.IsEqual(d.Pickup())
		require.NoError(t, err)
		assert.True(t, pickupEqual)
		dropoffEqual, err := dropoff.IsEqual(d.Dropoff())
		require.NoError(t, err)
		assert.True(t, dropoffEqual)
		assert.Nil(t, d.PartnerID())
		assert.Equal(t, Pending, d.Status())
		assert.True(t, d.IsActive())

		events := d.Events()
		require.Len(t, events, 1)
		assert.Equal(t, Pending, events[0].Status)
		assert.Equal(t, createdAt, events[0].OccurredAt)
	})

	t.Run("should reject zero creation time", func(t *testing.T) {
		_, err := NewDelivery(kernel.NewUUID(), kernel.NewUUID(),
			mustGeoPoint(t, 40.0, -74.0), mustGeoPoint(t, 40.1, -74.0), time.Time{})
		assert.Error(t, err)
	})

	t.Run("should reject unconstructed coordinates", func(t *testing.T) {
		_, err := NewDelivery(kernel.NewUUID(), kernel.NewUUID(),
			kernel.GeoPoint{}, mustGeoPoint(t, 40.1, -74.0), time.Now())
		assert.Error(t, err)
	})
}

func TestDelivery_Assign(t *testing.T) {
	t.Run("should attach partner and move to assigned", func(t *testing.T) {
		d := makeDelivery(t)
		partnerID := kernel.NewUUID()
		at := time.Now()

		err := d.Assign(partnerID, nil, at)

		require.NoError(t, err)
		assert.Equal(t, Assigned, d.Status())
		require.NotNil(t, d.PartnerID())
		assert.Equal(t, partnerID, *d.PartnerID())
		require.NotNil(t, d.AssignedAt())
		assert.Equal(t, at, *d.AssignedAt())
	})

	t.Run("should record the partner position on the assignment event", func(t *testing.T) {
		d := makeDelivery(t)
		from := mustGeoPoint(t, 40.7200, -74.0000)

		require.NoError(t, d.Assign(kernel.NewUUID(), &from, time.Now()))

		events := d.Events()
		require.Len(t, events, 2)
		require.NotNil(t, events[1].Location)
		fromEqual, err := from.IsEqual(*events[1].Location)
		require.NoError(t, err)
		assert.True(t, fromEqual)
	})

	t.Run("should reject second assignment", func(t *testing.T) {
		d := makeAssignedDelivery(t)

		err := d.Assign(kernel.NewUUID(), nil, time.Now())

		var transitionErr *errs.InvalidStateTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestDelivery_HappyPath(t *testing.T) {
	t.Run("should walk the full lifecycle to delivered", func(t *testing.T) {
		d := makeDelivery(t)
		now := time.Now()

		require.NoError(t, d.Assign(kernel.NewUUID(), nil, now))
		require.NoError(t, d.Accept(now.Add(time.Minute)))
		require.NoError(t, d.MarkPickedUp(now.Add(10*time.Minute)))
		require.NoError(t, d.MarkInTransit(now.Add(12*time.Minute)))
		require.NoError(t, d.Complete(now.Add(30*time.Minute)))

		assert.Equal(t, Delivered, d.Status())
		assert.False(t, d.IsActive())
		require.NotNil(t, d.PickedUpAt())
		require.NotNil(t, d.CompletedAt())
		assert.Equal(t, now.Add(30*time.Minute), *d.CompletedAt())

		events := d.Events()
		require.Len(t, events, 6)
		expected := []Status{Pending, Assigned, Accepted, PickedUp, InTransit, Delivered}
		for i, event := range events {
			assert.Equal(t, expected[i], event.Status)
		}
	})

	t.Run("should stamp pickup and drop-off points on the matching events", func(t *testing.T) {
		d := makeDelivery(t)
		now := time.Now()

		require.NoError(t, d.Assign(kernel.NewUUID(), nil, now))
		require.NoError(t, d.Accept(now))
		require.NoError(t, d.MarkPickedUp(now))
		require.NoError(t, d.MarkInTransit(now))
		require.NoError(t, d.Complete(now))

		events := d.Events()
		require.Len(t, events, 6)
		require.NotNil(t, events[3].Location)
		pickupEqual, err := d.Pickup().IsEqual(*events[3].Location)
		require.NoError(t, err)
		assert.True(t, pickupEqual)
		require.NotNil(t, events[5].Location)
		dropoffEqual, err := d.Dropoff().IsEqual(*events[5].Location)
		require.NoError(t, err)
		assert.True(t, dropoffEqual)
		assert.Nil(t, events[4].Location) // position unknown en route
	})

	t.Run("should reject skipping statuses", func(t *testing.T) {
		d := makeDelivery(t)

		assert.Error(t, d.Complete(time.Now()))
		assert.Error(t, d.MarkPickedUp(time.Now()))
		assert.Error(t, d.MarkInTransit(time.Now()))
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("should cancel with reason", func(t *testing.T) {
		d := makeAssignedDelivery(t)

		err := d.Cancel("customer request", time.Now())

		require.NoError(t, err)
		assert.Equal(t, Cancelled, d.Status())
		assert.Equal(t, "customer request", d.CancellationReason())
		assert.NotNil(t, d.CompletedAt())

		events := d.Events()
		assert.Equal(t, "customer request", events[len(events)-1].Note)
	})

	t.Run("should require a reason", func(t *testing.T) {
		d := makeDelivery(t)
		assert.ErrorIs(t, d.Cancel("", time.Now()), ErrCancellationReasonIsRequired)
	})

	t.Run("should reject cancelling in transit", func(t *testing.T) {
		d := makeAssignedDelivery(t)
		now := time.Now()
		require.NoError(t, d.Accept(now))
		require.NoError(t, d.MarkPickedUp(now))
		require.NoError(t, d.MarkInTransit(now))

		assert.Error(t, d.Cancel("too late", time.Now()))
	})

	t.Run("should reject any transition from terminal status", func(t *testing.T) {
		d := makeDelivery(t)
		require.NoError(t, d.Cancel("restaurant closed", time.Now()))

		assert.Error(t, d.Assign(kernel.NewUUID(), nil, time.Now()))
		assert.Error(t, d.Cancel("again", time.Now()))
	})
}

func TestDelivery_FailAndReturn(t *testing.T) {
	t.Run("should fail after pickup", func(t *testing.T) {
		d := makeAssignedDelivery(t)
		now := time.Now()
		require.NoError(t, d.Accept(now))
		require.NoError(t, d.MarkPickedUp(now))

		require.NoError(t, d.Fail("vehicle breakdown", now))

		assert.Equal(t, Failed, d.Status())
	})

	t.Run("should return from transit", func(t *testing.T) {
		d := makeAssignedDelivery(t)
		now := time.Now()
		require.NoError(t, d.Accept(now))
		require.NoError(t, d.MarkPickedUp(now))
		require.NoError(t, d.MarkInTransit(now))

		require.NoError(t, d.Return("customer unreachable", now))

		assert.Equal(t, Returned, d.Status())
	})

	t.Run("should reject failing before pickup", func(t *testing.T) {
		d := makeAssignedDelivery(t)
		assert.Error(t, d.Fail("too early", time.Now()))
	})

	t.Run("should reject returning before transit", func(t *testing.T) {
		d := makeAssignedDelivery(t)
		assert.Error(t, d.Return("too early", time.Now()))
	})
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("should restore in-flight delivery", func(t *testing.T) {
		partnerID := kernel.NewUUID()
		now := time.Now()
		events := []TrackingEvent{
			{Status: Pending, OccurredAt: now},
			{Status: Assigned, OccurredAt: now.Add(time.Minute)},
		}

		d, err := RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), &partnerID,
			mustGeoPoint(t, 40.0, -74.0), mustGeoPoint(t, 40.1, -74.0),
			Assigned, "", now, &now, nil, nil, events)

		require.NoError(t, err)
		assert.Equal(t, Assigned, d.Status())
		assert.Equal(t, partnerID, *d.PartnerID())
		assert.Len(t, d.Events(), 2)
	})

	t.Run("should reject assigned delivery without partner", func(t *testing.T) {
		_, err := RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), nil,
			mustGeoPoint(t, 40.0, -74.0), mustGeoPoint(t, 40.1, -74.0),
			Assigned, "", time.Now(), nil, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should follow the lifecycle table", func(t *testing.T) {
		assert.True(t, Pending.CanTransitionTo(Assigned))
		assert.True(t, Pending.CanTransitionTo(Cancelled))
		assert.False(t, Pending.CanTransitionTo(Delivered))

		assert.True(t, InTransit.CanTransitionTo(Delivered))
		assert.True(t, InTransit.CanTransitionTo(Failed))
		assert.True(t, InTransit.CanTransitionTo(Returned))
		assert.False(t, InTransit.CanTransitionTo(Cancelled))
	})

	t.Run("should have no transitions out of terminal statuses", func(t *testing.T) {
		for _, terminal := range []Status{Delivered, Cancelled, Failed, Returned} {
			assert.True(t, terminal.IsTerminal())
			for target := range getValidStatusStrings() {
				assert.False(t, terminal.CanTransitionTo(target))
			}
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round trip all valid statuses", func(t *testing.T) {
		for status, str := range getValidStatusStrings() {
			parsed, err := StatusFromString(str)
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
			assert.Equal(t, str, status.String())
		}
	})

	t.Run("should reject unknown value", func(t *testing.T) {
		_, err := StatusFromString("TELEPORTED")
		assert.Error(t, err)
	})
}
