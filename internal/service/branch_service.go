package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/mapper"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BranchService struct {
	branchRepo *repository.BranchRepository
	logger     *zap.Logger
}

func NewBranchService(branchRepo *repository.BranchRepository, logger *zap.Logger) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// List returns branches, optionally restricted to active ones
func (s *BranchService) List(ctx context.Context, activeOnly bool) ([]domain.BranchDTO, error) {
	branches, err := s.branchRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	dtos := make([]domain.BranchDTO, len(branches))
	for i := range branches {
		dtos[i] = mapper.ToBranchDTO(&branches[i])
	}
	return dtos, nil
}

func (s *BranchService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BranchDTO, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	dto := mapper.ToBranchDTO(branch)
	return &dto, nil
}

func (s *BranchService) Create(ctx context.Context, req *domain.CreateBranchRequest) (*domain.BranchDTO, error) {
	branch := &domain.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Zone:    req.Zone,
		City:    req.City,
		Active:  true,
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	s.logger.Info("branch created",
		zap.String("branchID", branch.ID.String()),
		zap.String("name", branch.Name))

	dto := mapper.ToBranchDTO(branch)
	return &dto, nil
}

func (s *BranchService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateBranchRequest) (*domain.BranchDTO, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.Phone = req.Phone
	branch.Zone = req.Zone
	branch.City = req.City
	if req.Active != nil {
		branch.Active = *req.Active
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}

	dto := mapper.ToBranchDTO(branch)
	return &dto, nil
}

// Deactivate soft-deletes a branch. The row is kept so existing orders and
// transfers keep their branch reference.
func (s *BranchService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.branchRepo.Deactivate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to deactivate branch: %w", err)
	}

	s.logger.Info("branch deactivated", zap.String("branchID", id.String()))
	return nil
}
