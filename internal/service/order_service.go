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

// maxOrderListSize caps listings so the intake screen never pulls the
// whole table
const maxOrderListSize = 200

type OrderService struct {
	orderRepo   *repository.OrderRepository
	clientRepo  *repository.ClientRepository
	branchRepo  *repository.BranchRepository
	historyRepo *repository.StatusHistoryRepository
	numberSvc   *OrderNumberService
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	clientRepo *repository.ClientRepository,
	branchRepo *repository.BranchRepository,
	historyRepo *repository.StatusHistoryRepository,
	numberSvc *OrderNumberService,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		branchRepo:  branchRepo,
		historyRepo: historyRepo,
		numberSvc:   numberSvc,
		logger:      logger,
	}
}

// Create registers a device intake. The client may be referenced by id or
// described inline; inline clients are deduplicated by exact phone match.
func (s *OrderService) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.OrderDTO, error) {
	branch, err := s.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: branch %s", ErrNotFound, req.BranchID)
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	if !branch.Active {
		return nil, fmt.Errorf("%w: branch %s is not active", ErrConflict, branch.Name)
	}

	client, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = domain.PaymentTypeCash
	}
	if !paymentType.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, paymentType)
	}

	var estimatedDelivery *time.Time
	if req.EstimatedDeliveryAt != nil {
		parsed, err := parseTimestamp(*req.EstimatedDeliveryAt)
		if err != nil {
			return nil, fmt.Errorf("%w: estimated_delivery_at: %v", ErrInvalidInput, err)
		}
		estimatedDelivery = &parsed
	}

	orderNumber, err := s.numberSvc.Generate(ctx)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderNumber:         orderNumber,
		ClientID:            client.ID,
		BranchID:            branch.ID,
		DeviceType:          req.DeviceType,
		Brand:               req.Brand,
		Model:               req.Model,
		Color:               req.Color,
		Serial:              req.Serial,
		AccessData:          req.AccessData,
		Accessories:         req.Accessories,
		ReportedFault:       req.ReportedFault,
		Technician:          req.Technician,
		ReceivedBy:          req.ReceivedBy,
		Status:              domain.OrderStatusReceived,
		EstimatedCost:       req.EstimatedCost,
		LaborCost:           req.LaborCost,
		DepositPaid:         req.DepositPaid,
		PaymentType:         paymentType,
		ReceivedAt:          time.Now(),
		EstimatedDeliveryAt: estimatedDelivery,
		Notes:               req.Notes,
	}
	order.ComputeTotal()

	history := repository.NewTransition(uuid.Nil, nil, domain.OrderStatusReceived, req.ReceivedBy)
	if err := s.orderRepo.CreateWithHistory(ctx, order, history); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("orderID", order.ID.String()),
		zap.String("branch", branch.Name))

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	dto := mapper.ToOrderDTO(created)
	return &dto, nil
}

// resolveClient finds or registers the client for an intake
func (s *OrderService) resolveClient(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Client, error) {
	if req.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: client %s", ErrNotFound, *req.ClientID)
			}
			return nil, fmt.Errorf("failed to get client: %w", err)
		}
		return client, nil
	}

	if req.ClientName == "" || req.ClientPhone == "" {
		return nil, fmt.Errorf("%w: client_id or client_name and client_phone are required", ErrInvalidInput)
	}

	client, err := s.clientRepo.GetByPhone(ctx, req.ClientPhone)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up client by phone: %w", err)
	}

	client = &domain.Client{
		Name:    req.ClientName,
		Phone:   req.ClientPhone,
		Email:   req.ClientEmail,
		Address: req.ClientAddress,
		TaxID:   req.ClientTaxID,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client registered on intake",
		zap.String("clientID", client.ID.String()),
		zap.String("phone", client.Phone))

	return client, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

// List returns order summaries matching the filters, newest intake first.
// Results are capped at 200 rows regardless of filters.
func (s *OrderService) List(ctx context.Context, filters *repository.OrderFilters) ([]domain.OrderSummaryDTO, error) {
	orders, err := s.orderRepo.List(ctx, filters, maxOrderListSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]domain.OrderSummaryDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToOrderSummaryDTO(&orders[i])
	}
	return dtos, nil
}

// Update applies a partial update. A status change is validated against the
// lifecycle rules and recorded in the status history inside the same
// transaction as the save. Moving to delivered stamps DeliveredAt exactly
// once; a later re-save never resets it.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOrderRequest) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	var history *domain.StatusHistory
	if req.Status != nil && *req.Status != order.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		if !order.Status.CanTransitionTo(*req.Status) {
			return nil, &InvalidTransitionError{
				Entity: "order",
				From:   string(order.Status),
				To:     string(*req.Status),
			}
		}

		from := order.Status
		history = repository.NewTransition(order.ID, &from, *req.Status, req.ChangedBy)
		order.Status = *req.Status

		if order.Status == domain.OrderStatusDelivered && order.DeliveredAt == nil {
			now := time.Now()
			order.DeliveredAt = &now
		}
	}

	if req.TechnicalDiagnosis != nil {
		order.TechnicalDiagnosis = *req.TechnicalDiagnosis
	}
	if req.WorkPerformed != nil {
		order.WorkPerformed = *req.WorkPerformed
	}
	if req.PartsSummary != nil {
		order.PartsSummary = *req.PartsSummary
	}
	if req.Technician != nil {
		order.Technician = *req.Technician
	}
	if req.DeliveredTo != nil {
		order.DeliveredTo = *req.DeliveredTo
	}
	if req.EstimatedCost != nil {
		order.EstimatedCost = *req.EstimatedCost
	}
	if req.LaborCost != nil {
		order.LaborCost = *req.LaborCost
	}
	if req.DepositPaid != nil {
		order.DepositPaid = *req.DepositPaid
	}
	if req.PaymentType != nil {
		if !req.PaymentType.IsValid() {
			return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, *req.PaymentType)
		}
		order.PaymentType = *req.PaymentType
	}
	if req.EstimatedDeliveryAt != nil {
		parsed, err := parseTimestamp(*req.EstimatedDeliveryAt)
		if err != nil {
			return nil, fmt.Errorf("%w: estimated_delivery_at: %v", ErrInvalidInput, err)
		}
		order.EstimatedDeliveryAt = &parsed
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	order.ComputeTotal()

	if err := s.orderRepo.UpdateWithHistory(ctx, order, history); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if history != nil {
		s.logger.Info("order status changed",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("from", string(*history.PreviousStatus)),
			zap.String("to", string(history.NewStatus)))
	}

	updated, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	dto := mapper.ToOrderDTO(updated)
	return &dto, nil
}

// Cancel soft-cancels an order. The row is kept and stays visible in
// listings; only the status changes, through the regular transition path.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, changedBy string) (*domain.OrderDTO, error) {
	cancelled := domain.OrderStatusCancelled
	return s.Update(ctx, id, &domain.UpdateOrderRequest{
		Status:    &cancelled,
		ChangedBy: changedBy,
	})
}

// GetHistory returns an order's status history, newest change first
func (s *OrderService) GetHistory(ctx context.Context, id uuid.UUID) ([]domain.StatusHistoryDTO, error) {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	history, err := s.historyRepo.GetByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}

	dtos := make([]domain.StatusHistoryDTO, len(history))
	for i := range history {
		dtos[i] = mapper.ToStatusHistoryDTO(&history[i])
	}
	return dtos, nil
}

// parseTimestamp accepts RFC 3339 timestamps and plain dates
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
