package repository

import (
	"context"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransferFilters contains filter options for listing transfers
type TransferFilters struct {
	Status   *domain.TransferStatus
	OrderID  *uuid.UUID
	BranchID *uuid.UUID // matches either end of the transfer
}

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, transfer *domain.Transfer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(transfer).Error
}

func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	var transfer domain.Transfer
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("OriginBranch").
		Preload("DestinationBranch").
		Where("id = ?", id).
		First(&transfer).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *TransferRepository) Update(ctx context.Context, transfer *domain.Transfer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(transfer).Error
}

// List returns transfers matching the filters, newest dispatch first
func (r *TransferRepository) List(ctx context.Context, filters *TransferFilters) ([]domain.Transfer, error) {
	var transfers []domain.Transfer
	query := r.db.WithContext(ctx).
		Preload("Order").
		Preload("OriginBranch").
		Preload("DestinationBranch")
	query = r.applyFilters(query, filters)
	err := query.Order("sent_at DESC").Find(&transfers).Error
	return transfers, err
}

func (r *TransferRepository) applyFilters(query *gorm.DB, filters *TransferFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if filters.OrderID != nil {
		query = query.Where("order_id = ?", *filters.OrderID)
	}

	if filters.BranchID != nil {
		query = query.Where("origin_branch_id = ? OR destination_branch_id = ?", *filters.BranchID, *filters.BranchID)
	}

	return query
}
