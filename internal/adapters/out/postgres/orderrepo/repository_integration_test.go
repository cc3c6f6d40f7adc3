package orderrepo_test

import (
	"context"
	"testing"

	"orderintegration/internal/adapters/out/postgres/orderrepo"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency in tests that do
// not care about aggregate tracking.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderRepositoryIntegrationTestSuite exercises the GORM order repository
// against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(orderNumber string, items ...order.Item) *order.Order {
	if len(items) == 0 {
		item, err := order.NewItem("SKU-1", "Widget", 2, decimal.NewFromFloat(10.50))
		suite.Require().NoError(err)
		items = []order.Item{item}
	}
	aggregate, err := order.NewOrder(kernel.NewUUID(), orderNumber, "CUST-7", items)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()

	itemA, err := order.NewItem("SKU-1", "Widget", 2, decimal.NewFromFloat(10.50))
	suite.Require().NoError(err)
	itemB, err := order.NewItem("SKU-2", "", 1, decimal.NewFromFloat(5.25))
	suite.Require().NoError(err)

	aggregate := suite.newOrder("ORD-1001", itemA, itemB)
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(aggregate.ID(), restored.ID())
	suite.Equal("ORD-1001", restored.OrderNumber())
	suite.Equal("CUST-7", restored.CustomerCode())
	suite.Equal(order.Created, restored.Status())
	suite.Len(restored.Items(), 2)
	suite.True(restored.TotalAmount().Equal(decimal.NewFromFloat(26.25)),
		"total should be recomputed from items")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByOrderNumber() {
	ctx := context.Background()

	aggregate := suite.newOrder("ORD-1002")
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	restored, err := suite.repo.GetByOrderNumber(ctx, "ORD-1002")
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), restored.ID())

	_, err = suite.repo.GetByOrderNumber(ctx, "ORD-9999")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestExistsByOrderNumber() {
	ctx := context.Background()

	exists, err := suite.repo.ExistsByOrderNumber(ctx, "ORD-1003")
	suite.Require().NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repo.Add(ctx, suite.newOrder("ORD-1003")))

	exists, err = suite.repo.ExistsByOrderNumber(ctx, "ORD-1003")
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()

	aggregate := suite.newOrder("ORD-1004")
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.ChangeStatus(order.Prepared))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Prepared, restored.Status())
	suite.Len(restored.Items(), 1, "items survive a status update")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	aggregate := suite.newOrder("ORD-1005")
	err := suite.repo.Update(context.Background(), aggregate)
	suite.Require().Error(err)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
