package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/mapper"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PartService manages billable part line items. Adding or removing a line
// updates the owning order's parts_cost and total_value atomically; the
// rollup never drifts from the line items.
type PartService struct {
	partRepo  *repository.PartUsageRepository
	orderRepo *repository.OrderRepository
	logger    *zap.Logger
}

func NewPartService(
	partRepo *repository.PartUsageRepository,
	orderRepo *repository.OrderRepository,
	logger *zap.Logger,
) *PartService {
	return &PartService{
		partRepo:  partRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// ListByOrder returns an order's part line items
func (s *PartService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.PartUsageDTO, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	parts, err := s.partRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}

	dtos := make([]domain.PartUsageDTO, len(parts))
	for i := range parts {
		dtos[i] = mapper.ToPartUsageDTO(&parts[i])
	}
	return dtos, nil
}

// Add records a part against an order. PriceTotal is derived from quantity
// and unit price, never taken from the caller.
func (s *PartService) Add(ctx context.Context, req *domain.AddPartRequest) (*domain.PartUsageDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrConflict, order.OrderNumber, order.Status)
	}

	part := &domain.PartUsage{
		OrderID:     order.ID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		PriceTotal:  roundMoney(float64(req.Quantity) * req.UnitPrice),
	}

	if err := s.partRepo.Add(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to add part: %w", err)
	}

	s.logger.Info("part added",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("description", part.Description),
		zap.Int("quantity", part.Quantity),
		zap.Float64("priceTotal", part.PriceTotal))

	dto := mapper.ToPartUsageDTO(part)
	return &dto, nil
}

// Remove deletes a part line item and refreshes the order totals
func (s *PartService) Remove(ctx context.Context, id uuid.UUID) error {
	err := s.partRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove part: %w", err)
	}

	s.logger.Info("part removed", zap.String("partID", id.String()))
	return nil
}

// roundMoney rounds to 2 decimal places
func roundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}
