package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/mapper"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TransferService manages device movements between branches. Transfers
// follow a strict lifecycle: pending -> in_transit -> received, with
// cancellation allowed until the device has been received.
type TransferService struct {
	transferRepo *repository.TransferRepository
	orderRepo    *repository.OrderRepository
	branchRepo   *repository.BranchRepository
	logger       *zap.Logger
}

func NewTransferService(
	transferRepo *repository.TransferRepository,
	orderRepo *repository.OrderRepository,
	branchRepo *repository.BranchRepository,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		orderRepo:    orderRepo,
		branchRepo:   branchRepo,
		logger:       logger,
	}
}

// Create opens a transfer for an order. When the origin branch is omitted
// the order's current branch is used. Origin and destination must differ.
func (s *TransferService) Create(ctx context.Context, req *domain.CreateTransferRequest) (*domain.TransferDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	originID := order.BranchID
	if req.OriginBranchID != nil {
		originID = *req.OriginBranchID
	}

	if originID == req.DestinationBranchID {
		return nil, ErrSameBranchTransfer
	}

	if _, err := s.branchRepo.GetByID(ctx, originID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: origin branch %s", ErrNotFound, originID)
		}
		return nil, fmt.Errorf("failed to get origin branch: %w", err)
	}
	destination, err := s.branchRepo.GetByID(ctx, req.DestinationBranchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: destination branch %s", ErrNotFound, req.DestinationBranchID)
		}
		return nil, fmt.Errorf("failed to get destination branch: %w", err)
	}
	if !destination.Active {
		return nil, fmt.Errorf("%w: destination branch %s is not active", ErrConflict, destination.Name)
	}

	transfer := &domain.Transfer{
		OrderID:             order.ID,
		OriginBranchID:      originID,
		DestinationBranchID: req.DestinationBranchID,
		Reason:              req.Reason,
		SentBy:              req.SentBy,
		Status:              domain.TransferStatusPending,
		SentAt:              time.Now(),
		Notes:               req.Notes,
	}

	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	s.logger.Info("transfer created",
		zap.String("transferID", transfer.ID.String()),
		zap.String("orderNumber", order.OrderNumber),
		zap.String("destination", destination.Name))

	created, err := s.transferRepo.GetByID(ctx, transfer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transfer: %w", err)
	}

	dto := mapper.ToTransferDTO(created)
	return &dto, nil
}

func (s *TransferService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferDTO, error) {
	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	dto := mapper.ToTransferDTO(transfer)
	return &dto, nil
}

// List returns transfers matching the filters, newest dispatch first
func (s *TransferService) List(ctx context.Context, filters *repository.TransferFilters) ([]domain.TransferDTO, error) {
	transfers, err := s.transferRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	dtos := make([]domain.TransferDTO, len(transfers))
	for i := range transfers {
		dtos[i] = mapper.ToTransferDTO(&transfers[i])
	}
	return dtos, nil
}

// Advance moves a transfer to the requested status. Receiving stamps
// ReceivedAt and requires the receiver's name; terminal transfers reject
// any further change.
func (s *TransferService) Advance(ctx context.Context, id uuid.UUID, req *domain.UpdateTransferRequest) (*domain.TransferDTO, error) {
	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}

	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown transfer status %q", ErrInvalidInput, req.Status)
	}
	if !transfer.Status.CanTransitionTo(req.Status) {
		return nil, &InvalidTransitionError{
			Entity: "transfer",
			From:   string(transfer.Status),
			To:     string(req.Status),
		}
	}

	if req.Status == domain.TransferStatusReceived {
		if req.ReceivedBy == "" {
			return nil, ErrReceivedByRequired
		}
		now := time.Now()
		transfer.ReceivedAt = &now
		transfer.ReceivedBy = req.ReceivedBy
	}

	from := transfer.Status
	transfer.Status = req.Status
	if req.Notes != nil {
		transfer.Notes = *req.Notes
	}

	if err := s.transferRepo.Update(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to update transfer: %w", err)
	}

	s.logger.Info("transfer status changed",
		zap.String("transferID", transfer.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(transfer.Status)))

	updated, err := s.transferRepo.GetByID(ctx, transfer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transfer: %w", err)
	}

	dto := mapper.ToTransferDTO(updated)
	return &dto, nil
}
