package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFindPartnersNearQuery_Valid(t *testing.T) {
	query, err := queries.NewFindPartnersNearQuery(40.7128, -74.0060, 5, 4.0)
	require.NoError(t, err)

	require.NoError(t, query.Validate())
	assert.InEpsilon(t, 40.7128, query.Center().Latitude(), 1e-9)
	assert.InEpsilon(t, 5.0, query.RadiusKm(), 1e-9)
	assert.InEpsilon(t, 4.0, query.MinRating(), 1e-9)
}

func TestNewFindPartnersNearQuery_NonPositiveRadius_UsesDefault(t *testing.T) {
	query, err := queries.NewFindPartnersNearQuery(40.7128, -74.0060, 0, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, partner.DefaultDeliveryRadiusKm, query.RadiusKm(), 1e-9)
}

func TestNewFindPartnersNearQuery_InvalidInput(t *testing.T) {
	t.Run("should reject latitude out of range", func(t *testing.T) {
		_, err := queries.NewFindPartnersNearQuery(91, 0, 5, 0)
		require.Error(t, err)
	})

	t.Run("should reject rating out of range", func(t *testing.T) {
		_, err := queries.NewFindPartnersNearQuery(40.7128, -74.0060, 5, 5.5)
		require.Error(t, err)
	})
}

func TestFindPartnersNearQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.FindPartnersNearQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrFindPartnersNearQueryIsNotConstructed)
}

func TestNewGetActiveDeliveriesQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveDeliveriesQuery()
	require.NoError(t, query.Validate())
	assert.Nil(t, query.PartnerID())
}

func TestNewGetPartnerActiveDeliveriesQuery_Valid(t *testing.T) {
	partnerID := kernel.NewUUID()

	query, err := queries.NewGetPartnerActiveDeliveriesQuery(partnerID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.NotNil(t, query.PartnerID())
	assert.Equal(t, partnerID, *query.PartnerID())
}

func TestNewGetPartnerActiveDeliveriesQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetPartnerActiveDeliveriesQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetActiveDeliveriesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveDeliveriesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveDeliveriesQueryIsNotConstructed)
}
