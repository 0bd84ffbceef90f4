package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderSequenceRepository handles database operations for the per-day order
// number counters.
type OrderSequenceRepository struct {
	db *gorm.DB
}

// NewOrderSequenceRepository creates a new OrderSequenceRepository
func NewOrderSequenceRepository(db *gorm.DB) *OrderSequenceRepository {
	return &OrderSequenceRepository{db: db}
}

// GetNextNumber atomically retrieves and increments the sequence for a day.
// This method is thread-safe and uses SELECT FOR UPDATE to prevent race
// conditions. If no sequence exists for the day, it creates one starting at 1.
//
// Returns the next sequence number to use (already incremented in DB).
func (r *OrderSequenceRepository) GetNextNumber(ctx context.Context, day string) (int, error) {
	var seq domain.OrderSequence
	var nextSeq int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Try to get existing sequence with row lock for atomicity.
		// sqlite (used in tests) has no row locks, the whole transaction
		// serializes instead.
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		result := query.
			Where("day = ?", day).
			First(&seq)

		if result.Error == gorm.ErrRecordNotFound {
			seq = domain.OrderSequence{
				Day:          day,
				LastSequence: 1,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create order sequence: %w", err)
			}
			nextSeq = 1
		} else if result.Error != nil {
			return fmt.Errorf("failed to get order sequence: %w", result.Error)
		} else {
			nextSeq = seq.LastSequence + 1
			if err := tx.Model(&seq).Updates(map[string]interface{}{
				"last_sequence": nextSeq,
				"updated_at":    time.Now(),
			}).Error; err != nil {
				return fmt.Errorf("failed to update order sequence: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return nextSeq, nil
}

// GetCurrentSequence retrieves the current sequence value without
// incrementing. Returns 0 if no sequence exists for the day.
func (r *OrderSequenceRepository) GetCurrentSequence(ctx context.Context, day string) (int, error) {
	var seq domain.OrderSequence
	result := r.db.WithContext(ctx).
		Where("day = ?", day).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get order sequence: %w", result.Error)
	}

	return seq.LastSequence, nil
}
