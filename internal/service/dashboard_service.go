package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const topDevicesLimit = 10

// DashboardService aggregates operational and financial snapshots for the
// storefront dashboard and the stats endpoint. All aggregation happens in
// parameterized SQL; filters are bound, never interpolated.
type DashboardService struct {
	orderRepo *repository.OrderRepository
	logger    *zap.Logger
}

func NewDashboardService(orderRepo *repository.OrderRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// monthBounds returns the first and last instant of t's calendar month
func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

// GetDashboard builds the current-month snapshot: order counts per status,
// billing totals, and open work per branch.
func (s *DashboardService) GetDashboard(ctx context.Context, branchID *uuid.UUID) (*domain.DashboardDTO, error) {
	now := time.Now()
	from, to := monthBounds(now)

	counts, err := s.orderRepo.CountByStatus(ctx, from, to, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	fin, err := s.orderRepo.GetFinancials(ctx, from, to, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate financials: %w", err)
	}

	openByBranch, err := s.orderRepo.GetOpenOrdersByBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count open orders per branch: %w", err)
	}

	var totalOrders int64
	for _, count := range counts {
		totalOrders += count
	}

	branchRows := make([]domain.BranchOpenOrdersDTO, len(openByBranch))
	for i, row := range openByBranch {
		branchRows[i] = domain.BranchOpenOrdersDTO{
			BranchID:   row.BranchID,
			BranchName: row.BranchName,
			OpenOrders: row.OpenOrders,
		}
	}

	return &domain.DashboardDTO{
		Month:              now.Format("2006-01"),
		TotalOrders:        totalOrders,
		OrdersByStatus:     counts,
		TotalBilled:        fin.TotalBilled,
		TotalDeposits:      fin.TotalDeposits,
		OutstandingBalance: fin.OutstandingBalance,
		OpenOrdersByBranch: branchRows,
	}, nil
}

// GetDailySales returns current-month intake counts and billed revenue per
// calendar day
func (s *DashboardService) GetDailySales(ctx context.Context, branchID *uuid.UUID) ([]domain.DailySalesDTO, error) {
	from, to := monthBounds(time.Now())

	rows, err := s.orderRepo.GetDailySales(ctx, from, to, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily sales: %w", err)
	}

	dtos := make([]domain.DailySalesDTO, len(rows))
	for i, row := range rows {
		dtos[i] = domain.DailySalesDTO{
			Day:     row.Day,
			Orders:  row.Orders,
			Revenue: row.Revenue,
		}
	}
	return dtos, nil
}

// GetTopDevices returns the most frequently repaired device type and brand
// combinations
func (s *DashboardService) GetTopDevices(ctx context.Context, branchID *uuid.UUID) ([]domain.TopDeviceDTO, error) {
	rows, err := s.orderRepo.GetTopDevices(ctx, branchID, topDevicesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top devices: %w", err)
	}

	dtos := make([]domain.TopDeviceDTO, len(rows))
	for i, row := range rows {
		dtos[i] = domain.TopDeviceDTO{
			DeviceType: row.DeviceType,
			Brand:      row.Brand,
			Count:      row.Count,
		}
	}
	return dtos, nil
}
