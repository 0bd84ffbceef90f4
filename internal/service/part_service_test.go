package service_test

import (
	"context"
	"testing"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/fixpoint-hq/workshop-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createPartService(db *gorm.DB) *service.PartService {
	partRepo := repository.NewPartUsageRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	return service.NewPartService(partRepo, orderRepo, zap.NewNop())
}

func TestPartService_Add_RollsUpOrderTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	orderSvc := createOrderService(db)
	partSvc := createPartService(db)
	ctx := context.Background()

	branch := testutil.CreateTestBranch(t, db, "Central")
	order, err := orderSvc.Create(ctx, intakeRequest(branch.ID))
	require.NoError(t, err)
	require.Equal(t, 150.0, order.TotalValue)

	part, err := partSvc.Add(ctx, &domain.AddPartRequest{
		OrderID:     order.ID,
		Description: "replacement screen",
		Quantity:    2,
		UnitPrice:   25,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, part.PriceTotal)

	reloaded, err := orderSvc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, reloaded.PartsCost)
	assert.Equal(t, 200.0, reloaded.TotalValue)
	assert.Equal(t, 200.0, reloaded.BalanceDue)
}

func TestPartService_Remove_RecomputesOrderTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	orderSvc := createOrderService(db)
	partSvc := createPartService(db)
	ctx := context.Background()

	branch := testutil.CreateTestBranch(t, db, "Central")
	order, err := orderSvc.Create(ctx, intakeRequest(branch.ID))
	require.NoError(t, err)

	part, err := partSvc.Add(ctx, &domain.AddPartRequest{
		OrderID:     order.ID,
		Description: "battery",
		Quantity:    1,
		UnitPrice:   40,
	})
	require.NoError(t, err)

	require.NoError(t, partSvc.Remove(ctx, part.ID))

	reloaded, err := orderSvc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloaded.PartsCost)
	assert.Equal(t, 150.0, reloaded.TotalValue)
}

func TestPartService_Add_RoundsLineTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	orderSvc := createOrderService(db)
	partSvc := createPartService(db)
	ctx := context.Background()

	branch := testutil.CreateTestBranch(t, db, "Central")
	order, err := orderSvc.Create(ctx, intakeRequest(branch.ID))
	require.NoError(t, err)

	part, err := partSvc.Add(ctx, &domain.AddPartRequest{
		OrderID:     order.ID,
		Description: "thermal paste",
		Quantity:    3,
		UnitPrice:   0.333,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, part.PriceTotal)
}

func TestPartService_Add_TerminalOrderRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	orderSvc := createOrderService(db)
	partSvc := createPartService(db)
	ctx := context.Background()

	branch := testutil.CreateTestBranch(t, db, "Central")
	order, err := orderSvc.Create(ctx, intakeRequest(branch.ID))
	require.NoError(t, err)

	_, err = orderSvc.Cancel(ctx, order.ID, "front desk")
	require.NoError(t, err)

	_, err = partSvc.Add(ctx, &domain.AddPartRequest{
		OrderID:     order.ID,
		Description: "replacement screen",
		Quantity:    1,
		UnitPrice:   25,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestPartService_Add_UnknownOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	partSvc := createPartService(db)

	_, err := partSvc.Add(context.Background(), &domain.AddPartRequest{
		OrderID:     uuid.New(),
		Description: "battery",
		Quantity:    1,
		UnitPrice:   10,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPartService_Remove_UnknownPart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	partSvc := createPartService(db)

	err := partSvc.Remove(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPartService_ListByOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	orderSvc := createOrderService(db)
	partSvc := createPartService(db)
	ctx := context.Background()

	branch := testutil.CreateTestBranch(t, db, "Central")
	order, err := orderSvc.Create(ctx, intakeRequest(branch.ID))
	require.NoError(t, err)

	// Empty list for an order without parts
	parts, err := partSvc.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, parts)

	_, err = partSvc.Add(ctx, &domain.AddPartRequest{
		OrderID:     order.ID,
		Description: "screen",
		Quantity:    1,
		UnitPrice:   30,
	})
	require.NoError(t, err)
	_, err = partSvc.Add(ctx, &domain.AddPartRequest{
		OrderID:     order.ID,
		Description: "battery",
		Quantity:    1,
		UnitPrice:   20,
	})
	require.NoError(t, err)

	parts, err = partSvc.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	// Oldest line first
	assert.Equal(t, "screen", parts[0].Description)
	assert.Equal(t, "battery", parts[1].Description)

	_, err = partSvc.ListByOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
