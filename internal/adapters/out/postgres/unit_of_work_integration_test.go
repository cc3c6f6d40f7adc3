package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "orderintegration/internal/adapters/out/postgres"
	"orderintegration/internal/adapters/out/postgres/attemptrepo"
	"orderintegration/internal/adapters/out/postgres/auditrepo"
	"orderintegration/internal/adapters/out/postgres/orderrepo"
	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&attemptrepo.AttemptDTO{},
		&auditrepo.EventDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, integration_attempts, audit_events").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.AttemptRepository(), "First instance should provide attempt repository")
	suite.NotNil(uow1.AuditRepository(), "First instance should provide audit repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T(), "ORD-1001")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify order persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
	suite.Equal("ORD-1001", retrievedOrder.OrderNumber())
	suite.Len(retrievedOrder.Items(), 1)
}

// TestUnitOfWork_MultiRepositoryTransaction verifies multiple repository operations
// within a single transaction work atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T(), "ORD-1002")
	testAttempt := createTestAttempt(suite.T(), testOrder.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.AttemptRepository().Add(ctx, testAttempt)
	suite.Require().NoError(err)

	event, err := audit.NewEvent(
		kernel.NewUUID(), audit.EntityTypeOrder, testOrder.ID(), audit.OrderCreated,
		"", "", "corr-1",
	)
	suite.Require().NoError(err)
	err = uow.AuditRepository().Append(ctx, event)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify everything persisted with relationships intact
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.OrderNumber(), retrievedOrder.OrderNumber())

	openAttempts, err := newUow.AttemptRepository().FindOpenForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(openAttempts, 1)
	suite.Equal(testAttempt.ID(), openAttempts[0].ID())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T(), "ORD-1003")
	testAttempt := createTestAttempt(suite.T(), testOrder.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.AttemptRepository().Add(ctx, testAttempt)
	suite.Require().NoError(err)

	// Verify entities exist within transaction
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify entities do not exist after rollback using new unit of work
	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	openAttempts, err := newUow.AttemptRepository().FindOpenForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(openAttempts, "Attempt should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder(suite.T(), "ORD-2001")
	order2 := createTestOrder(suite.T(), "ORD-2002")

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify only order1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T(), "ORD-3001")

	// Add order without beginning transaction (should auto-commit)
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	// Verify with new unit of work instance
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_SendAndReconcileWorkflow tests the complete integration flow:
// create an order, record a send attempt, and resolve it through a
// confirmation, all with matching audit events.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SendAndReconcileWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Step 1: Create and add a new order
	testOrder := createTestOrder(suite.T(), "ORD-4001")
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Step 2: Move it through preparation
	err = testOrder.ChangeStatus(order.Prepared)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	// Step 3: Record an open send attempt
	testAttempt := createTestAttempt(suite.T(), testOrder.ID())
	err = uow.AttemptRepository().Add(ctx, testAttempt)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Step 4: Resolve the attempt the way a webhook would
	reconcileUow := suite.factory.Create()
	err = reconcileUow.Begin(ctx)
	suite.Require().NoError(err)

	openAttempts, err := reconcileUow.AttemptRepository().FindOpenForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(openAttempts, 1)

	resolved := openAttempts[0]
	resolved.Touch("corr-webhook")
	err = resolved.MarkAcked(`{"success":true,"erpReference":"ERP-20260829-00007"}`)
	suite.Require().NoError(err)

	err = reconcileUow.AttemptRepository().Update(ctx, resolved)
	suite.Require().NoError(err)

	event, err := audit.NewEvent(
		kernel.NewUUID(), audit.EntityTypeOrder, testOrder.ID(), audit.ErpAck,
		resolved.ResponsePayload(), "webhook", "corr-webhook",
	)
	suite.Require().NoError(err)
	err = reconcileUow.AuditRepository().Append(ctx, event)
	suite.Require().NoError(err)

	err = reconcileUow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify final state using a new unit of work
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Prepared, retrievedOrder.Status())

	openAttempts, err = newUow.AttemptRepository().FindOpenForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(openAttempts, "Resolved attempt should no longer be open")

	var eventCount int64
	err = suite.db.Table("audit_events").
		Where("entity_id = ?", testOrder.ID().Bytes()).
		Count(&eventCount).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), eventCount)
}

// TestUnitOfWork_DuplicateOrderNumber verifies the unique index on order
// numbers rejects a second order with the same number.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateOrderNumber() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first := createTestOrder(suite.T(), "ORD-5001")
	err := uow.OrderRepository().Add(ctx, first)
	suite.Require().NoError(err)

	exists, err := uow.OrderRepository().ExistsByOrderNumber(ctx, "ORD-5001")
	suite.Require().NoError(err)
	suite.True(exists)

	duplicate := createTestOrder(suite.T(), "ORD-5001")
	err = uow.OrderRepository().Add(ctx, duplicate)
	suite.Require().Error(err, "Adding a duplicate order number should fail")
}

// createTestOrder creates a valid order for testing purposes.
func createTestOrder(t *testing.T, orderNumber string) *order.Order {
	t.Helper()
	item, err := order.NewItem("SKU-100", "Integration widget", 3, decimal.NewFromFloat(19.99))
	if err != nil {
		t.Fatal(err)
	}
	testOrder, err := order.NewOrder(kernel.NewUUID(), orderNumber, "CUST-42", []order.Item{item})
	if err != nil {
		t.Fatal(err)
	}
	return testOrder
}

// createTestAttempt creates a valid open integration attempt for testing purposes.
func createTestAttempt(t *testing.T, orderID kernel.UUID) *integration.Attempt {
	t.Helper()
	attempt, err := integration.NewSentAttempt(
		kernel.NewUUID(), orderID, integration.TargetErp, `{"orderNumber":"test"}`, "corr-send",
	)
	if err != nil {
		t.Fatal(err)
	}
	return attempt
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
