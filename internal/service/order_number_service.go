package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"go.uber.org/zap"
)

// OrderNumberService generates unique, human-readable order numbers.
//
// Format: ORD-YYYYMMDD-NNNN
// Example: ORD-20260901-0001
//
// The sequence resets each day; the counter row is locked per intake so
// concurrent intakes never share a number.
type OrderNumberService struct {
	repo   *repository.OrderSequenceRepository
	logger *zap.Logger
}

// NewOrderNumberService creates a new OrderNumberService
func NewOrderNumberService(
	repo *repository.OrderSequenceRepository,
	logger *zap.Logger,
) *OrderNumberService {
	return &OrderNumberService{
		repo:   repo,
		logger: logger,
	}
}

// Generate produces the next order number for today
func (s *OrderNumberService) Generate(ctx context.Context) (string, error) {
	return s.GenerateForDay(ctx, time.Now())
}

// GenerateForDay produces the next order number for the given day
func (s *OrderNumberService) GenerateForDay(ctx context.Context, day time.Time) (string, error) {
	dayKey := day.Format("20060102")

	nextSeq, err := s.repo.GetNextNumber(ctx, dayKey)
	if err != nil {
		s.logger.Error("failed to get next order sequence",
			zap.String("day", dayKey),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	number := fmt.Sprintf("ORD-%s-%04d", dayKey, nextSeq)

	s.logger.Info("generated order number",
		zap.String("orderNumber", number),
		zap.String("day", dayKey),
		zap.Int("sequence", nextSeq))

	return number, nil
}

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4,}$`)

// ValidateOrderNumber checks if an order number follows the expected format
func (s *OrderNumberService) ValidateOrderNumber(number string) bool {
	return orderNumberPattern.MatchString(number)
}
