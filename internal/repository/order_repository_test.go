package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/fixpoint-hq/workshop-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, branchID uuid.UUID, status domain.OrderStatus, receivedAt time.Time) *domain.Order {
	t.Helper()
	client := testutil.CreateTestClient(t, db, "Maria Lopez", uuid.NewString())
	order := testutil.CreateTestOrder(t, db, client.ID, branchID)
	require.NoError(t, db.Model(order).Updates(map[string]interface{}{
		"status":      status,
		"received_at": receivedAt,
	}).Error)
	order.Status = status
	order.ReceivedAt = receivedAt
	return order
}

func TestOrderRepository_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	central := testutil.CreateTestBranch(t, db, "Central")
	north := testutil.CreateTestBranch(t, db, "North")

	now := time.Now().UTC()
	old := seedOrder(t, db, central.ID, domain.OrderStatusDelivered, now.AddDate(0, 0, -30))
	recent := seedOrder(t, db, central.ID, domain.OrderStatusInRepair, now.AddDate(0, 0, -1))
	other := seedOrder(t, db, north.ID, domain.OrderStatusReceived, now)

	// No filters: newest intake first
	orders, err := repo.List(ctx, nil, 200)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, other.ID, orders[0].ID)
	assert.Equal(t, recent.ID, orders[1].ID)
	assert.Equal(t, old.ID, orders[2].ID)

	// Status filter
	inRepair := domain.OrderStatusInRepair
	orders, err = repo.List(ctx, &repository.OrderFilters{Status: &inRepair}, 200)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, recent.ID, orders[0].ID)

	// Branch filter
	orders, err = repo.List(ctx, &repository.OrderFilters{BranchID: &north.ID}, 200)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, other.ID, orders[0].ID)

	// Date range excludes the old intake
	from := now.AddDate(0, 0, -7)
	orders, err = repo.List(ctx, &repository.OrderFilters{DateFrom: &from}, 200)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	to := now.AddDate(0, 0, -7)
	orders, err = repo.List(ctx, &repository.OrderFilters{DateTo: &to}, 200)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, old.ID, orders[0].ID)

	// Limit caps the result set
	orders, err = repo.List(ctx, nil, 2)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_List_PreloadsClientAndBranch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	central := testutil.CreateTestBranch(t, db, "Central")
	seedOrder(t, db, central.ID, domain.OrderStatusReceived, time.Now().UTC())

	orders, err := repo.List(ctx, nil, 200)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	require.NotNil(t, orders[0].Client)
	assert.Equal(t, "Maria Lopez", orders[0].Client.Name)
	require.NotNil(t, orders[0].Branch)
	assert.Equal(t, "Central", orders[0].Branch.Name)
}

func TestOrderRepository_GetByID_HistoryNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	ctx := context.Background()

	central := testutil.CreateTestBranch(t, db, "Central")
	order := seedOrder(t, db, central.ID, domain.OrderStatusInRepair, time.Now().UTC())

	base := time.Now().UTC().Add(-time.Hour)
	received := domain.OrderStatusReceived
	entries := []*domain.StatusHistory{
		{OrderID: order.ID, NewStatus: domain.OrderStatusReceived, ChangedAt: base},
		{OrderID: order.ID, PreviousStatus: &received, NewStatus: domain.OrderStatusInRepair, ChangedAt: base.Add(time.Minute)},
	}
	for _, entry := range entries {
		require.NoError(t, historyRepo.Create(ctx, entry))
	}

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.History, 2)
	assert.Equal(t, domain.OrderStatusInRepair, fetched.History[0].NewStatus)
	assert.Equal(t, domain.OrderStatusReceived, fetched.History[1].NewStatus)

	latest, err := historyRepo.GetLatestByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInRepair, latest.NewStatus)
}

func TestOrderRepository_GetByOrderNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	central := testutil.CreateTestBranch(t, db, "Central")
	order := seedOrder(t, db, central.ID, domain.OrderStatusReceived, time.Now().UTC())

	fetched, err := repo.GetByOrderNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)

	_, err = repo.GetByOrderNumber(ctx, "ORD-19700101-0001")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	central := testutil.CreateTestBranch(t, db, "Central")
	now := time.Now().UTC()

	seedOrder(t, db, central.ID, domain.OrderStatusReceived, now)
	seedOrder(t, db, central.ID, domain.OrderStatusReceived, now)
	seedOrder(t, db, central.ID, domain.OrderStatusInRepair, now)
	// Outside the window
	seedOrder(t, db, central.ID, domain.OrderStatusReceived, now.AddDate(0, -2, 0))

	counts, err := repo.CountByStatus(ctx, now.AddDate(0, 0, -7), now.Add(time.Hour), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts[domain.OrderStatusReceived])
	assert.Equal(t, int64(1), counts[domain.OrderStatusInRepair])
	assert.NotContains(t, counts, domain.OrderStatusDelivered)
}
