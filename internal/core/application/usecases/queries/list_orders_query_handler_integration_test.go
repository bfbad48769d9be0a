package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopAggregateTracker satisfies the repository tracker without recording anything.
type noopAggregateTracker struct{}

func (t *noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type OrderQueryHandlersTestSuite struct {
	suite.Suite
	container       *postgres.PostgresContainer
	db              *gorm.DB
	listHandler     queries.ListOrdersQueryHandler
	customerHandler queries.ListCustomerOrdersQueryHandler
	getByIDHandler  queries.GetOrderByIDQueryHandler
	orderRepo       *orderrepo.GormOrderRepository
}

func (suite *OrderQueryHandlersTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.listHandler = queries.NewListOrdersQueryHandler(db)
	suite.customerHandler = queries.NewListCustomerOrdersQueryHandler(db)
	suite.getByIDHandler = queries.NewGetOrderByIDQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &noopAggregateTracker{})
}

func (suite *OrderQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderQueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

// seedOrder persists a pending order and returns the aggregate.
func (suite *OrderQueryHandlersTestSuite) seedOrder(customerID kernel.UUID, street, note string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), customerID, street, note)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

// seedOrderAt persists an order with an explicit status and creation time,
// bypassing the lifecycle so tests can shape the dataset freely.
func (suite *OrderQueryHandlersTestSuite) seedOrderAt(
	customerID kernel.UUID, street string, status order.Status, createdAt time.Time,
) *order.Order {
	reason := ""
	if status == order.RequestCancel {
		reason = "No longer needed"
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, street, "", status, reason, createdAt, createdAt, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_EmptyDatabase_ReturnsEmptyPage() {
	query := queries.NewListOrdersQuery(1, 10)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result.Items)
	suite.Zero(result.TotalCount)
	suite.Equal(1, result.Page)
	suite.Equal(10, result.PageSize)
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_Paging_ReturnsRequestedSlice() {
	customerID := kernel.NewUUID()
	base := time.Now().UTC().Add(-48 * time.Hour)
	for i := range 25 {
		suite.seedOrderAt(customerID, "12 Main Street", order.Pending, base.Add(time.Duration(i)*time.Minute))
	}

	result, err := suite.listHandler.Handle(context.Background(), queries.NewListOrdersQuery(2, 10))

	suite.Require().NoError(err)
	suite.Len(result.Items, 10)
	suite.Equal(int64(25), result.TotalCount)
	suite.Equal(2, result.Page)

	lastPage, err := suite.listHandler.Handle(context.Background(), queries.NewListOrdersQuery(3, 10))
	suite.Require().NoError(err)
	suite.Len(lastPage.Items, 5)
	suite.Equal(int64(25), lastPage.TotalCount)
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_OrdersNewestFirst() {
	customerID := kernel.NewUUID()
	base := time.Now().UTC().Add(-3 * time.Hour)
	oldest := suite.seedOrderAt(customerID, "1 First Street", order.Pending, base)
	middle := suite.seedOrderAt(customerID, "2 Second Street", order.Pending, base.Add(time.Hour))
	newest := suite.seedOrderAt(customerID, "3 Third Street", order.Pending, base.Add(2*time.Hour))

	result, err := suite.listHandler.Handle(context.Background(), queries.NewListOrdersQuery(1, 10))

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 3)
	suite.Equal(newest.ID().String(), result.Items[0].ID.String())
	suite.Equal(middle.ID().String(), result.Items[1].ID.String())
	suite.Equal(oldest.ID().String(), result.Items[2].ID.String())
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_StatusFilter_ReturnsOnlyMatching() {
	customerID := kernel.NewUUID()
	now := time.Now().UTC()
	suite.seedOrderAt(customerID, "12 Main Street", order.Pending, now.Add(-time.Hour))
	awaiting := suite.seedOrderAt(customerID, "7 Oak Avenue", order.RequestCancel, now.Add(-2*time.Hour))
	suite.seedOrderAt(customerID, "9 Elm Road", order.Completed, now.Add(-3*time.Hour))

	query := queries.NewListOrdersQuery(1, 10).WithStatus(order.RequestCancel)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 1)
	suite.Equal(int64(1), result.TotalCount)
	suite.Equal(awaiting.ID().String(), result.Items[0].ID.String())
	suite.Equal("RequestCancel", result.Items[0].Status)
	suite.Equal("No longer needed", result.Items[0].ReasonCancel)
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_KeyWordFilter_MatchesStreetNoteAndReason() {
	customerID := kernel.NewUUID()
	suite.seedOrder(customerID, "12 Riverside Drive", "")
	suite.seedOrder(customerID, "7 Oak Avenue", "ring the RIVERSIDE bell")
	suite.seedOrder(customerID, "9 Elm Road", "leave at the door")
	awaiting := suite.seedOrderAt(customerID, "3 Birch Lane", order.RequestCancel, time.Now().UTC().Add(-time.Hour))

	result, err := suite.listHandler.Handle(context.Background(),
		queries.NewListOrdersQuery(1, 10).WithKeyWord("riverside"))

	suite.Require().NoError(err)
	suite.Len(result.Items, 2)
	suite.Equal(int64(2), result.TotalCount)

	// The keyword also searches the recorded cancellation reason.
	byReason, err := suite.listHandler.Handle(context.Background(),
		queries.NewListOrdersQuery(1, 10).WithKeyWord("no longer"))

	suite.Require().NoError(err)
	suite.Require().Len(byReason.Items, 1)
	suite.Equal(awaiting.ID().String(), byReason.Items[0].ID.String())
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_CustomerFilter_ReturnsOnlyOwned() {
	alice := kernel.NewUUID()
	bob := kernel.NewUUID()
	suite.seedOrder(alice, "12 Main Street", "")
	suite.seedOrder(alice, "7 Oak Avenue", "")
	suite.seedOrder(bob, "9 Elm Road", "")

	query := queries.NewListOrdersQuery(1, 10).WithCustomerID(alice)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result.Items, 2)
	for _, item := range result.Items {
		suite.Equal(alice.String(), item.CustomerID.String())
	}
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_DateRangeFilter_BoundsCreation() {
	customerID := kernel.NewUUID()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	suite.seedOrderAt(customerID, "1 First Street", order.Pending, base.AddDate(0, 0, -10))
	inRange := suite.seedOrderAt(customerID, "2 Second Street", order.Pending, base)
	suite.seedOrderAt(customerID, "3 Third Street", order.Pending, base.AddDate(0, 0, 10))

	query := queries.NewListOrdersQuery(1, 10).
		WithDateRange(base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 1)
	suite.Equal(inRange.ID().String(), result.Items[0].ID.String())
}

func (suite *OrderQueryHandlersTestSuite) TestListOrders_InvalidQuery_ReturnsError() {
	_, err := suite.listHandler.Handle(context.Background(), queries.ListOrdersQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewListOrdersQuery constructor")
}

func (suite *OrderQueryHandlersTestSuite) TestListCustomerOrders_ReturnsOnlyOwnOrders() {
	alice := kernel.NewUUID()
	bob := kernel.NewUUID()
	base := time.Now().UTC().Add(-2 * time.Hour)
	first := suite.seedOrderAt(alice, "12 Main Street", order.Pending, base)
	second := suite.seedOrderAt(alice, "7 Oak Avenue", order.Confirmed, base.Add(time.Hour))
	suite.seedOrderAt(bob, "9 Elm Road", order.Pending, base)

	query, err := queries.NewListCustomerOrdersQuery(alice, 1, 10)
	suite.Require().NoError(err)

	result, err := suite.customerHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 2)
	suite.Equal(int64(2), result.TotalCount)
	suite.Equal(second.ID().String(), result.Items[0].ID.String())
	suite.Equal(first.ID().String(), result.Items[1].ID.String())
}

func (suite *OrderQueryHandlersTestSuite) TestListCustomerOrders_KeyWordFilter_ScopedToCustomer() {
	alice := kernel.NewUUID()
	bob := kernel.NewUUID()
	suite.seedOrder(alice, "12 Riverside Drive", "")
	suite.seedOrder(alice, "7 Oak Avenue", "leave at the door")
	suite.seedOrder(bob, "8 Riverside Drive", "")

	query, err := queries.NewListCustomerOrdersQuery(alice, 1, 10)
	suite.Require().NoError(err)

	result, err := suite.customerHandler.Handle(context.Background(), query.WithKeyWord("riverside"))

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 1)
	suite.Equal(int64(1), result.TotalCount)
	suite.Equal(alice.String(), result.Items[0].CustomerID.String())
	suite.Equal("12 Riverside Drive", result.Items[0].Street)
}

func (suite *OrderQueryHandlersTestSuite) TestListCustomerOrders_StatusFilter_ReturnsOnlyMatching() {
	alice := kernel.NewUUID()
	now := time.Now().UTC()
	suite.seedOrderAt(alice, "12 Main Street", order.Pending, now.Add(-time.Hour))
	awaiting := suite.seedOrderAt(alice, "7 Oak Avenue", order.RequestCancel, now.Add(-2*time.Hour))
	suite.seedOrderAt(alice, "9 Elm Road", order.Completed, now.Add(-3*time.Hour))

	query, err := queries.NewListCustomerOrdersQuery(alice, 1, 10)
	suite.Require().NoError(err)

	result, err := suite.customerHandler.Handle(context.Background(), query.WithStatus(order.RequestCancel))

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 1)
	suite.Equal(awaiting.ID().String(), result.Items[0].ID.String())
	suite.Equal("RequestCancel", result.Items[0].Status)
}

func (suite *OrderQueryHandlersTestSuite) TestListCustomerOrders_DateRangeFilter_BoundsCreation() {
	alice := kernel.NewUUID()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	suite.seedOrderAt(alice, "1 First Street", order.Pending, base.AddDate(0, 0, -10))
	inRange := suite.seedOrderAt(alice, "2 Second Street", order.Pending, base)
	suite.seedOrderAt(alice, "3 Third Street", order.Pending, base.AddDate(0, 0, 10))

	query, err := queries.NewListCustomerOrdersQuery(alice, 1, 10)
	suite.Require().NoError(err)

	result, err := suite.customerHandler.Handle(context.Background(),
		query.WithDateRange(base.AddDate(0, 0, -1), base.AddDate(0, 0, 1)))

	suite.Require().NoError(err)
	suite.Require().Len(result.Items, 1)
	suite.Equal(inRange.ID().String(), result.Items[0].ID.String())
}

func (suite *OrderQueryHandlersTestSuite) TestGetOrderByID_ReturnsFullResponse() {
	customerID := kernel.NewUUID()
	seeded := suite.seedOrder(customerID, "12 Main Street", "leave at the door")

	query, err := queries.NewGetOrderByIDQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.getByIDHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(seeded.ID().String(), result.ID.String())
	suite.Equal(customerID.String(), result.CustomerID.String())
	suite.Equal("12 Main Street", result.Street)
	suite.Equal("leave at the door", result.Note)
	suite.Equal("Pending", result.Status)
	suite.Empty(result.ReasonCancel)
}

func (suite *OrderQueryHandlersTestSuite) TestGetOrderByID_NonExistent_ReturnsNotFound() {
	query, err := queries.NewGetOrderByIDQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getByIDHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueryHandlersTestSuite))
}
