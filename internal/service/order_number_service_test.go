package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/fixpoint-hq/workshop-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createOrderNumberService(db *gorm.DB) *service.OrderNumberService {
	return service.NewOrderNumberService(repository.NewOrderSequenceRepository(db), zap.NewNop())
}

func TestOrderNumberService_GenerateForDay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderNumberService(db)
	ctx := context.Background()

	day := time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)

	first, err := svc.GenerateForDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20250901-0001", first)

	second, err := svc.GenerateForDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20250901-0002", second)

	// A new day restarts the counter
	nextDay, err := svc.GenerateForDay(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "ORD-20250902-0001", nextDay)
}

func TestOrderNumberService_SequencePadding(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createOrderNumberService(db)
	ctx := context.Background()

	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	var last string
	for i := 0; i < 12; i++ {
		number, err := svc.GenerateForDay(ctx, day)
		require.NoError(t, err)
		last = number
	}
	assert.Equal(t, "ORD-20250901-0012", last)
}

func TestValidateOrderNumber(t *testing.T) {
	svc := service.NewOrderNumberService(nil, zap.NewNop())

	tests := []struct {
		number string
		valid  bool
	}{
		{"ORD-20250901-0001", true},
		{"ORD-20250901-0042", true},
		{"ORD-20251231-9999", true},
		// Sequences past 9999 grow without truncation
		{"ORD-20250901-10000", true},
		{"ord-20250901-0001", false},
		{"ORD-2025091-0001", false},
		{"ORD-20250901-001", false},
		{"ORD-20250901-", false},
		{"ORD20250901-0001", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%q", tc.number), func(t *testing.T) {
			assert.Equal(t, tc.valid, svc.ValidateOrderNumber(tc.number))
		})
	}
}
