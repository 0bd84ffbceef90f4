package repository

import (
	"context"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilters contains all filter options for listing orders
type OrderFilters struct {
	Status   *domain.OrderStatus
	BranchID *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithHistory inserts the order and its intake history row in one
// transaction so no order exists without a first status record.
func (r *OrderRepository) CreateWithHistory(ctx context.Context, order *domain.Order, history *domain.StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		history.OrderID = order.ID
		return tx.Create(history).Error
	})
}

// UpdateWithHistory saves the order and, when history is non-nil, appends the
// status transition in the same transaction.
func (r *OrderRepository) UpdateWithHistory(ctx context.Context, order *domain.Order, history *domain.StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if history == nil {
			return nil
		}
		history.OrderID = order.ID
		return tx.Create(history).Error
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Branch").
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at DESC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Branch").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns the most recent orders matching the filters, newest intake
// first, capped at limit rows.
func (r *OrderRepository) List(ctx context.Context, filters *OrderFilters, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Branch")
	query = r.applyFilters(query, filters)
	err := query.Order("received_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) applyFilters(query *gorm.DB, filters *OrderFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if filters.BranchID != nil {
		query = query.Where("branch_id = ?", *filters.BranchID)
	}

	if filters.DateFrom != nil {
		query = query.Where("received_at >= ?", *filters.DateFrom)
	}

	if filters.DateTo != nil {
		query = query.Where("received_at <= ?", *filters.DateTo)
	}

	return query
}

// CountByStatus returns order counts per status for intakes within the range
func (r *OrderRepository) CountByStatus(ctx context.Context, from, to time.Time, branchID *uuid.UUID) (map[domain.OrderStatus]int64, error) {
	type statusResult struct {
		Status domain.OrderStatus
		Count  int64
	}
	var results []statusResult

	query := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("status, COUNT(*) as count").
		Where("received_at >= ? AND received_at <= ?", from, to).
		Group("status")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.OrderStatus]int64)
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

// MonthlyFinancials holds billing aggregates for a date range
type MonthlyFinancials struct {
	TotalBilled        float64
	TotalDeposits      float64
	OutstandingBalance float64
}

// GetFinancials aggregates billed, deposited and outstanding amounts over
// intakes within the range. Cancelled orders are excluded from billing.
func (r *OrderRepository) GetFinancials(ctx context.Context, from, to time.Time, branchID *uuid.UUID) (*MonthlyFinancials, error) {
	var fin MonthlyFinancials
	query := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(total_value), 0) as total_billed, "+
			"COALESCE(SUM(deposit_paid), 0) as total_deposits, "+
			"COALESCE(SUM(total_value - deposit_paid), 0) as outstanding_balance").
		Where("received_at >= ? AND received_at <= ?", from, to).
		Where("status <> ?", domain.OrderStatusCancelled)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	err := query.Scan(&fin).Error
	if err != nil {
		return nil, err
	}
	return &fin, nil
}

// BranchOpenOrdersRow is one branch's count of orders still in the shop
type BranchOpenOrdersRow struct {
	BranchID   uuid.UUID
	BranchName string
	OpenOrders int64
}

// GetOpenOrdersByBranch counts non-terminal orders per branch
func (r *OrderRepository) GetOpenOrdersByBranch(ctx context.Context) ([]BranchOpenOrdersRow, error) {
	var rows []BranchOpenOrdersRow
	terminal := []domain.OrderStatus{
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
		domain.OrderStatusNotRepairable,
	}
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("orders.branch_id as branch_id, branches.name as branch_name, COUNT(*) as open_orders").
		Joins("JOIN branches ON branches.id = orders.branch_id").
		Where("orders.status NOT IN ?", terminal).
		Group("orders.branch_id, branches.name").
		Order("open_orders DESC").
		Scan(&rows).Error
	return rows, err
}

// DailySalesRow is one day's order count and revenue
type DailySalesRow struct {
	Day     string
	Orders  int64
	Revenue float64
}

// GetDailySales aggregates intake counts and billed revenue per calendar day
func (r *OrderRepository) GetDailySales(ctx context.Context, from, to time.Time, branchID *uuid.UUID) ([]DailySalesRow, error) {
	var rows []DailySalesRow
	query := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("DATE(received_at) as day, COUNT(*) as orders, COALESCE(SUM(total_value), 0) as revenue").
		Where("received_at >= ? AND received_at <= ?", from, to).
		Where("status <> ?", domain.OrderStatusCancelled).
		Group("DATE(received_at)").
		Order("day ASC")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

// TopDeviceRow is one device type/brand combination and its order count
type TopDeviceRow struct {
	DeviceType string
	Brand      string
	Count      int64
}

// GetTopDevices returns the most frequently repaired device type and brand
// combinations
func (r *OrderRepository) GetTopDevices(ctx context.Context, branchID *uuid.UUID, limit int) ([]TopDeviceRow, error) {
	var rows []TopDeviceRow
	query := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("device_type, brand, COUNT(*) as count").
		Group("device_type, brand").
		Order("count DESC").
		Limit(limit)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	err := query.Scan(&rows).Error
	return rows, err
}
