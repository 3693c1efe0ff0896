package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"quickbite/internal/adapters/out/postgres/orderrepo"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies persistence behavior against
// a real PostgreSQL instance, in particular the conditional-update
// assignment that backs the first-accept-wins race.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderInRiderSearch() *order.Order {
	unitPrice, err := kernel.NewMoney(1000)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Chicken Karahi", 1, unitPrice)
	suite.Require().NoError(err)
	point, err := kernel.NewGeoPoint(31.5204, 74.3587)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item}, unitPrice, point, order.PaymentMethodCash,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Accept())
	suite.Require().NoError(o.StartPreparing())
	suite.Require().NoError(o.StartRiderSearch())
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetRoundTrip() {
	ctx := context.Background()
	o := suite.newOrderInRiderSearch()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Assert().True(o.IsEqual(loaded))
	suite.Assert().Equal(order.LookingForRider, loaded.Status())
	suite.Assert().Equal(o.TotalAmount().Amount(), loaded.TotalAmount().Amount())
	suite.Assert().Len(loaded.Items(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignCourier_Succeeds() {
	ctx := context.Background()
	o := suite.newOrderInRiderSearch()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	courierID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.AssignCourier(ctx, o.ID(), courierID))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Assert().Equal(order.OutForDelivery, loaded.Status())
	suite.Require().NotNil(loaded.Courier())
	suite.Assert().True(loaded.Courier().IsEqual(courierID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignCourier_SecondCourierLoses() {
	ctx := context.Background()
	o := suite.newOrderInRiderSearch()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.AssignCourier(ctx, o.ID(), kernel.NewUUID()))

	err := suite.repository.AssignCourier(ctx, o.ID(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, order.ErrAlreadyAssigned)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignCourier_OrderNotFound() {
	err := suite.repository.AssignCourier(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAssignCourier_ConcurrentRaceHasOneWinner() {
	ctx := context.Background()
	o := suite.newOrderInRiderSearch()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	const racers = 16
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.repository.AssignCourier(ctx, o.ID(), kernel.NewUUID())
		}(i)
	}
	wg.Wait()

	wins, losses := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			suite.Assert().ErrorIs(err, order.ErrAlreadyAssigned)
			losses++
		}
	}
	suite.Assert().Equal(1, wins)
	suite.Assert().Equal(racers-1, losses)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Assert().Equal(order.OutForDelivery, loaded.Status())
	suite.Require().NotNil(loaded.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	first := suite.newOrderInRiderSearch()
	second := suite.newOrderInRiderSearch()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	stuck, err := suite.repository.GetAllInStatus(ctx, order.LookingForRider)
	suite.Require().NoError(err)
	suite.Assert().Len(stuck, 2)

	delivered, err := suite.repository.GetAllInStatus(ctx, order.Delivered)
	suite.Require().NoError(err)
	suite.Assert().Empty(delivered)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
