package repository

import (
	"context"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusHistoryRepository struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{db: db}
}

// Create records a new status transition
func (r *StatusHistoryRepository) Create(ctx context.Context, history *domain.StatusHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// GetByOrderID returns all status history for an order, newest change first
func (r *StatusHistoryRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.StatusHistory, error) {
	var history []domain.StatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at DESC").
		Find(&history).Error
	return history, err
}

// GetLatestByOrderID returns the most recent status change for an order
func (r *StatusHistoryRepository) GetLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.StatusHistory, error) {
	var history domain.StatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at DESC").
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// NewTransition builds an unsaved history row for a status change. The order
// repository persists it inside the same transaction as the order mutation.
func NewTransition(orderID uuid.UUID, from *domain.OrderStatus, to domain.OrderStatus, changedBy string) *domain.StatusHistory {
	return &domain.StatusHistory{
		OrderID:        orderID,
		PreviousStatus: from,
		NewStatus:      to,
		ChangedBy:      changedBy,
		ChangedAt:      time.Now(),
	}
}
