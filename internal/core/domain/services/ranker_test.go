package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

func makeCandidate(t *testing.T, rating float64, activeOrders int, total, completed int) *partner.DeliveryPartner {
	t.Helper()
	location, err := kernel.NewGeoPoint(40.0, -74.0)
	require.NoError(t, err)

	active := make([]kernel.UUID, activeOrders)
	for i := range active {
		active[i] = kernel.NewUUID()
	}

	availability := partner.Available
	if activeOrders >= partner.DefaultMaxConcurrentOrders {
		availability = partner.Busy
	}

	p, err := partner.RestoreDeliveryPartner(kernel.NewUUID(), "candidate", location,
		availability, true, true, rating, total, completed, total-completed,
		active, partner.DefaultMaxConcurrentOrders, partner.DefaultDeliveryRadiusKm, 0)
	require.NoError(t, err)
	return p
}

func TestPartnerRanker_Rank(t *testing.T) {
	ranker := NewPartnerRanker()

	t.Run("should order by rating first", func(t *testing.T) {
		low := makeCandidate(t, 4.1, 0, 10, 10)
		high := makeCandidate(t, 4.9, 2, 10, 5)

		ranked := ranker.Rank([]*partner.DeliveryPartner{low, high}, 0)

		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].IsEqual(high))
		assert.True(t, ranked[1].IsEqual(low))
	})

	t.Run("should break rating ties by active orders", func(t *testing.T) {
		loaded := makeCandidate(t, 4.8, 1, 10, 10)
		idle := makeCandidate(t, 4.8, 0, 10, 10)

		ranked := ranker.Rank([]*partner.DeliveryPartner{loaded, idle}, 0)

		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].IsEqual(idle))
		assert.True(t, ranked[1].IsEqual(loaded))
	})

	t.Run("should break load ties by completion rate", func(t *testing.T) {
		flaky := makeCandidate(t, 4.8, 0, 10, 6)
		reliable := makeCandidate(t, 4.8, 0, 10, 9)

		ranked := ranker.Rank([]*partner.DeliveryPartner{flaky, reliable}, 0)

		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].IsEqual(reliable))
		assert.True(t, ranked[1].IsEqual(flaky))
	})

	t.Run("should drop partners without capacity", func(t *testing.T) {
		full := makeCandidate(t, 5.0, partner.DefaultMaxConcurrentOrders, 10, 10)
		free := makeCandidate(t, 3.0, 0, 10, 10)

		ranked := ranker.Rank([]*partner.DeliveryPartner{full, free}, 0)

		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].IsEqual(free))
	})

	t.Run("should drop partners below minimum rating", func(t *testing.T) {
		weak := makeCandidate(t, 3.9, 0, 10, 10)
		strong := makeCandidate(t, 4.2, 0, 10, 10)

		ranked := ranker.Rank([]*partner.DeliveryPartner{weak, strong}, 4.0)

		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].IsEqual(strong))
	})

	t.Run("should return empty slice when nothing is eligible", func(t *testing.T) {
		weak := makeCandidate(t, 2.0, 0, 0, 0)
		assert.Empty(t, ranker.Rank([]*partner.DeliveryPartner{weak}, 4.5))
	})

	t.Run("should rank deterministically across shuffled input", func(t *testing.T) {
		candidates := []*partner.DeliveryPartner{
			makeCandidate(t, 4.8, 0, 10, 10),
			makeCandidate(t, 4.8, 0, 10, 10),
			makeCandidate(t, 4.8, 0, 10, 10),
		}
		shuffled := []*partner.DeliveryPartner{candidates[2], candidates[0], candidates[1]}

		first := ranker.Rank(candidates, 0)
		second := ranker.Rank(shuffled, 0)

		require.Len(t, first, 3)
		require.Len(t, second, 3)
		for i := range first {
			assert.True(t, first[i].IsEqual(second[i]))
		}
	})
}
