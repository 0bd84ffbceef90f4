package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartUsageRepository handles database operations for part line items.
// Every mutation also refreshes the owning order's parts_cost and
// total_value in the same transaction, so the rollup can never drift.
type PartUsageRepository struct {
	db *gorm.DB
}

func NewPartUsageRepository(db *gorm.DB) *PartUsageRepository {
	return &PartUsageRepository{db: db}
}

func (r *PartUsageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PartUsage, error) {
	var part domain.PartUsage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// ListByOrder returns an order's part line items in insertion order
func (r *PartUsageRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.PartUsage, error) {
	var parts []domain.PartUsage
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&parts).Error
	return parts, err
}

// SumByOrder returns the current rollup of price_total for an order
func (r *PartUsageRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.PartUsage{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(price_total), 0)").
		Scan(&sum).Error
	return sum, err
}

// Add inserts a part line item and refreshes the order totals atomically
func (r *PartUsageRepository) Add(ctx context.Context, part *domain.PartUsage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(part).Error; err != nil {
			return fmt.Errorf("failed to create part usage: %w", err)
		}
		return r.refreshOrderTotals(tx, part.OrderID)
	})
}

// Delete removes a part line item and refreshes the order totals atomically.
// Returns gorm.ErrRecordNotFound when the part does not exist.
func (r *PartUsageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var part domain.PartUsage
		if err := tx.Where("id = ?", id).First(&part).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.PartUsage{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete part usage: %w", err)
		}
		return r.refreshOrderTotals(tx, part.OrderID)
	})
}

// refreshOrderTotals recomputes parts_cost from the remaining line items and
// re-derives total_value. Must run inside the caller's transaction.
func (r *PartUsageRepository) refreshOrderTotals(tx *gorm.DB, orderID uuid.UUID) error {
	var sum float64
	if err := tx.Model(&domain.PartUsage{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(price_total), 0)").
		Scan(&sum).Error; err != nil {
		return fmt.Errorf("failed to sum part usages: %w", err)
	}

	return tx.Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"parts_cost":  sum,
			"total_value": gorm.Expr("estimated_cost + labor_cost + ?", sum),
			"updated_at":  time.Now(),
		}).Error
}
