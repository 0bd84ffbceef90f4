package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an isolated in-memory sqlite database with the full
// schema migrated. Each call returns a fresh database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// A single connection keeps the in-memory database alive and makes
	// sqlite transactions serialize.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.Client{},
		&domain.Branch{},
		&domain.Order{},
		&domain.PartUsage{},
		&domain.Transfer{},
		&domain.StatusHistory{},
		&domain.OrderSequence{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// CreateTestBranch inserts an active branch
func CreateTestBranch(t *testing.T, db *gorm.DB, name string) *domain.Branch {
	t.Helper()

	branch := &domain.Branch{
		Name:    name,
		Address: "1 Test Street",
		City:    "Testville",
		Active:  true,
	}
	require.NoError(t, db.Create(branch).Error)
	return branch
}

// CreateTestClient inserts a client with the given phone
func CreateTestClient(t *testing.T, db *gorm.DB, name, phone string) *domain.Client {
	t.Helper()

	client := &domain.Client{
		Name:  name,
		Phone: phone,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

var orderNumberCounter atomic.Int64

// CreateTestOrder inserts an order in received status with a fresh order
// number, skipping association handling
func CreateTestOrder(t *testing.T, db *gorm.DB, clientID, branchID uuid.UUID) *domain.Order {
	t.Helper()

	order := &domain.Order{
		OrderNumber:   fmt.Sprintf("ORD-20250901-%04d", orderNumberCounter.Add(1)),
		ClientID:      clientID,
		BranchID:      branchID,
		DeviceType:    "laptop",
		Brand:         "Acme",
		ReportedFault: "does not power on",
		Status:        domain.OrderStatusReceived,
		PaymentType:   domain.PaymentTypeCash,
		ReceivedAt:    time.Now().UTC(),
	}
	order.ComputeTotal()
	require.NoError(t, db.Omit(clause.Associations).Create(order).Error)
	return order
}
