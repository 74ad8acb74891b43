package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/partnerrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PartnerRepositoryIntegrationTestSuite provides integration tests for
// PartnerRepository using PostgreSQL containers to verify persistence behavior,
// optimistic locking, and the bounding-box candidate query.
type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE partners").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAdd_ValidPartner_Success() {
	ctx := context.Background()

	testPartner := suite.createAvailablePartner(40.7128, -74.0060)

	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Once()

	err := suite.repository.Add(ctx, testPartner)
	suite.Require().NoError(err)

	suite.assertPartnerCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_ExistingPartner_RestoresFullState() {
	ctx := context.Background()

	testPartner := suite.createAvailablePartner(40.7128, -74.0060)
	orderID := kernel.NewUUID()
	suite.Require().NoError(testPartner.AssignOrder(orderID))

	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)

	suite.Equal(testPartner.ID(), retrieved.ID())
	suite.Equal(testPartner.Name(), retrieved.Name())
	suite.Equal(partner.Available, retrieved.Availability())
	suite.True(retrieved.Active())
	suite.True(retrieved.Verified())
	suite.InDelta(testPartner.Rating(), retrieved.Rating(), 1e-9)
	suite.Equal([]kernel.UUID{orderID}, retrieved.ActiveOrderIDs())
	suite.Equal(testPartner.Version(), retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NonExistentPartner_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_MatchingVersion_IncrementsStoredVersion() {
	ctx := context.Background()

	testPartner := suite.createAvailablePartner(40.7128, -74.0060)
	suite.tracker.On("TrackAggregate", testPartner.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	loaded, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AssignOrder(kernel.NewUUID()))

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Equal(loaded.Version()+1, reloaded.Version())
	suite.Equal(1, reloaded.ActiveOrderCount())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()

	testPartner := suite.createAvailablePartner(40.7128, -74.0060)
	suite.tracker.On("TrackAggregate", testPartner.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	// Two loads of the same partner simulate concurrent writers.
	first, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.AssignOrder(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.AssignOrder(kernel.NewUUID()))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var versionErr *errs.VersionIsInvalidError
	suite.Require().ErrorAs(err, &versionErr)

	// The first write is the only one that landed.
	reloaded, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)
	suite.Equal(1, reloaded.ActiveOrderCount())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllInBoundingBox_FiltersByAreaAndEligibility() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	center, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)
	box, err := kernel.NewBoundingBox(center, 5)
	suite.Require().NoError(err)

	inside := suite.createAvailablePartner(40.7150, -74.0100)
	suite.Require().NoError(suite.repository.Add(ctx, inside))

	// Roughly 55 km north of the center.
	farAway := suite.createAvailablePartner(41.2128, -74.0060)
	suite.Require().NoError(suite.repository.Add(ctx, farAway))

	offline := suite.createAvailablePartner(40.7130, -74.0050)
	suite.Require().NoError(offline.SetAvailability(partner.Offline))
	suite.Require().NoError(suite.repository.Add(ctx, offline))

	unverified, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Unverified", mustGeoPoint(suite, 40.7130, -74.0070))
	suite.Require().NoError(err)
	unverified.Activate()
	suite.Require().NoError(suite.repository.Add(ctx, unverified))

	candidates, err := suite.repository.GetAllInBoundingBox(ctx, box)
	suite.Require().NoError(err)

	suite.Require().Len(candidates, 1)
	suite.Equal(inside.ID(), candidates[0].ID())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllInBoundingBox_NoCandidates_ReturnsEmptySlice() {
	ctx := context.Background()

	center, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)
	box, err := kernel.NewBoundingBox(center, 5)
	suite.Require().NoError(err)

	candidates, err := suite.repository.GetAllInBoundingBox(ctx, box)
	suite.Require().NoError(err)
	suite.Empty(candidates)
}

// createAvailablePartner creates an active, verified, available partner at the
// given coordinates.
func (suite *PartnerRepositoryIntegrationTestSuite) createAvailablePartner(
	lat, lon float64,
) *partner.DeliveryPartner {
	testPartner, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Test Partner",
		mustGeoPoint(suite, lat, lon))
	suite.Require().NoError(err)

	testPartner.Activate()
	testPartner.Verify()
	suite.Require().NoError(testPartner.SetAvailability(partner.Available))
	return testPartner
}

// assertPartnerCount verifies the number of partners in the database.
func (suite *PartnerRepositoryIntegrationTestSuite) assertPartnerCount(expected int) {
	var count int64
	err := suite.db.Model(&partnerrepo.PartnerDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func mustGeoPoint(suite *PartnerRepositoryIntegrationTestSuite, lat, lon float64) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)
	return point
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
