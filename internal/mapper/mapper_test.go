package mapper_test

import (
	"testing"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/mapper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *domain.Order {
	order := &domain.Order{
		OrderNumber:   "ORD-20250901-0001",
		ClientID:      uuid.New(),
		BranchID:      uuid.New(),
		DeviceType:    "laptop",
		Brand:         "Acme",
		ReportedFault: "does not power on",
		Status:        domain.OrderStatusInRepair,
		EstimatedCost: 100,
		PartsCost:     50,
		LaborCost:     25,
		DepositPaid:   40,
		PaymentType:   domain.PaymentTypeCash,
		ReceivedAt:    time.Now().Add(-72 * time.Hour),
	}
	order.ID = uuid.New()
	order.ComputeTotal()
	return order
}

func TestToOrderDTO_DerivesBalanceAndDays(t *testing.T) {
	order := sampleOrder()

	dto := mapper.ToOrderDTO(order)

	assert.Equal(t, 175.0, dto.TotalValue)
	assert.Equal(t, 135.0, dto.BalanceDue)
	assert.Equal(t, 3, dto.DaysInShop)
	assert.Nil(t, dto.DeliveredAt)
	assert.Nil(t, dto.Client)
	assert.Nil(t, dto.Branch)
}

func TestToOrderDTO_DeliveredOrderStopsTheClock(t *testing.T) {
	order := sampleOrder()
	delivered := order.ReceivedAt.Add(24 * time.Hour)
	order.Status = domain.OrderStatusDelivered
	order.DeliveredAt = &delivered

	dto := mapper.ToOrderDTO(order)

	assert.Equal(t, 1, dto.DaysInShop)
	require.NotNil(t, dto.DeliveredAt)
}

func TestToOrderDTO_FutureIntakeClampsToZeroDays(t *testing.T) {
	order := sampleOrder()
	order.ReceivedAt = time.Now().Add(time.Hour)

	dto := mapper.ToOrderDTO(order)
	assert.Equal(t, 0, dto.DaysInShop)
}

func TestToOrderSummaryDTO_IncludesRelatedNames(t *testing.T) {
	order := sampleOrder()
	order.Client = &domain.Client{Name: "Maria Lopez", Phone: "555-0101"}
	order.Branch = &domain.Branch{Name: "Central"}

	dto := mapper.ToOrderSummaryDTO(order)

	assert.Equal(t, "Maria Lopez", dto.ClientName)
	assert.Equal(t, "555-0101", dto.ClientPhone)
	assert.Equal(t, "Central", dto.BranchName)
	assert.Equal(t, 135.0, dto.BalanceDue)
}

func TestToTransferDTO(t *testing.T) {
	received := time.Now()
	transfer := &domain.Transfer{
		OrderID:             uuid.New(),
		OriginBranchID:      uuid.New(),
		DestinationBranchID: uuid.New(),
		Status:              domain.TransferStatusReceived,
		SentAt:              time.Now().Add(-time.Hour),
		ReceivedAt:          &received,
		ReceivedBy:          "front desk north",
		Order:               &domain.Order{OrderNumber: "ORD-20250901-0001"},
		OriginBranch:        &domain.Branch{Name: "Central"},
		DestinationBranch:   &domain.Branch{Name: "North"},
	}
	transfer.ID = uuid.New()

	dto := mapper.ToTransferDTO(transfer)

	assert.Equal(t, "ORD-20250901-0001", dto.OrderNumber)
	assert.Equal(t, "Central", dto.OriginBranchName)
	assert.Equal(t, "North", dto.DestinationBranchName)
	require.NotNil(t, dto.ReceivedAt)
	assert.Equal(t, "front desk north", dto.ReceivedBy)
}

func TestToClientDTO(t *testing.T) {
	client := &domain.Client{
		Name:  "Maria Lopez",
		Phone: "555-0101",
	}
	client.ID = uuid.New()
	client.CreatedAt = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	dto := mapper.ToClientDTO(client)
	assert.Equal(t, "2025-09-01T12:00:00Z", dto.RegisteredAt)
}
