package service_test

import (
	"context"
	"errors"
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

func createTransferService(db *gorm.DB) *service.TransferService {
	transferRepo := repository.NewTransferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	return service.NewTransferService(transferRepo, orderRepo, branchRepo, zap.NewNop())
}

func setupTransferFixtures(t *testing.T, db *gorm.DB) (*domain.Order, *domain.Branch, *domain.Branch) {
	origin := testutil.CreateTestBranch(t, db, "Central")
	destination := testutil.CreateTestBranch(t, db, "North")
	client := testutil.CreateTestClient(t, db, "Maria Lopez", "555-0101")
	order := testutil.CreateTestOrder(t, db, client.ID, origin.ID)
	return order, origin, destination
}

func TestTransferService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, origin, destination := setupTransferFixtures(t, db)

	transfer, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: destination.ID,
		Reason:              "specialist repair",
		SentBy:              "tech jan",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransferStatusPending, transfer.Status)
	// Origin defaults to the order's current branch
	assert.Equal(t, origin.ID, transfer.OriginBranchID)
	assert.Equal(t, destination.ID, transfer.DestinationBranchID)
	assert.Equal(t, order.OrderNumber, transfer.OrderNumber)
	assert.NotEmpty(t, transfer.SentAt)
	assert.Nil(t, transfer.ReceivedAt)
}

func TestTransferService_Create_SameBranchRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, origin, _ := setupTransferFixtures(t, db)

	_, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: origin.ID,
	})
	assert.ErrorIs(t, err, service.ErrSameBranchTransfer)
}

func TestTransferService_Create_InactiveDestinationRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, _, destination := setupTransferFixtures(t, db)
	require.NoError(t, db.Model(destination).Update("active", false).Error)

	_, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: destination.ID,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestTransferService_Create_UnknownOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)

	destination := testutil.CreateTestBranch(t, db, "North")

	_, err := svc.Create(context.Background(), &domain.CreateTransferRequest{
		OrderID:             uuid.New(),
		DestinationBranchID: destination.ID,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTransferService_Advance_FullLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, _, destination := setupTransferFixtures(t, db)

	transfer, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: destination.ID,
	})
	require.NoError(t, err)

	inTransit, err := svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatusInTransit,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusInTransit, inTransit.Status)

	received, err := svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status:     domain.TransferStatusReceived,
		ReceivedBy: "front desk north",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusReceived, received.Status)
	assert.Equal(t, "front desk north", received.ReceivedBy)
	require.NotNil(t, received.ReceivedAt)

	// Receiving a device does not move the order to the destination branch
	var reloaded domain.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, order.BranchID, reloaded.BranchID)
}

func TestTransferService_Advance_ReceivedRequiresReceiver(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, _, destination := setupTransferFixtures(t, db)

	transfer, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: destination.ID,
	})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatusInTransit,
	})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatusReceived,
	})
	assert.ErrorIs(t, err, service.ErrReceivedByRequired)
}

func TestTransferService_Advance_InvalidTransitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, _, destination := setupTransferFixtures(t, db)

	transfer, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: destination.ID,
	})
	require.NoError(t, err)

	// pending cannot skip straight to received
	_, err = svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status:     domain.TransferStatusReceived,
		ReceivedBy: "front desk north",
	})
	var transitionErr *service.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "transfer", transitionErr.Entity)

	// cancelled is terminal
	_, err = svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatusCancelled,
	})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatusInTransit,
	})
	require.True(t, errors.As(err, &transitionErr))

	// unknown status
	_, err = svc.Advance(ctx, transfer.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatus("lost"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTransferService_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createTransferService(db)
	ctx := context.Background()

	order, _, destination := setupTransferFixtures(t, db)
	south := testutil.CreateTestBranch(t, db, "South")

	first, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: destination.ID,
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &domain.CreateTransferRequest{
		OrderID:             order.ID,
		DestinationBranchID: south.ID,
	})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, first.ID, &domain.UpdateTransferRequest{
		Status: domain.TransferStatusInTransit,
	})
	require.NoError(t, err)

	pending := domain.TransferStatusPending
	listed, err := svc.List(ctx, &repository.TransferFilters{Status: &pending})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)

	// Branch filter matches either end of the transfer
	listed, err = svc.List(ctx, &repository.TransferFilters{BranchID: &south.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)

	listed, err = svc.List(ctx, &repository.TransferFilters{OrderID: &order.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
