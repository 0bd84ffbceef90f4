package repository

import (
	"context"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByPhone finds a client by exact phone match. Used to deduplicate
// clients on order intake.
func (r *ClientRepository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at ASC").
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// List returns the most recently registered clients
func (r *ClientRepository) List(ctx context.Context, limit int) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

// Search matches clients by partial name (case-insensitive) or phone
func (r *ClientRepository) Search(ctx context.Context, query string, limit int) ([]domain.Client, error) {
	var clients []domain.Client
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}
