package mapper

import (
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:           client.ID,
		Name:         client.Name,
		Phone:        client.Phone,
		Email:        client.Email,
		Address:      client.Address,
		TaxID:        client.TaxID,
		RegisteredAt: client.CreatedAt.Format(timeFormat),
	}
}

// ToBranchDTO converts Branch to BranchDTO
func ToBranchDTO(branch *domain.Branch) domain.BranchDTO {
	return domain.BranchDTO{
		ID:        branch.ID,
		Name:      branch.Name,
		Address:   branch.Address,
		Phone:     branch.Phone,
		Zone:      branch.Zone,
		City:      branch.City,
		Active:    branch.Active,
		CreatedAt: branch.CreatedAt.Format(timeFormat),
	}
}

// ToPartUsageDTO converts PartUsage to PartUsageDTO
func ToPartUsageDTO(part *domain.PartUsage) domain.PartUsageDTO {
	return domain.PartUsageDTO{
		ID:          part.ID,
		OrderID:     part.OrderID,
		Description: part.Description,
		Quantity:    part.Quantity,
		UnitPrice:   part.UnitPrice,
		PriceTotal:  part.PriceTotal,
		CreatedAt:   part.CreatedAt.Format(timeFormat),
	}
}

// ToStatusHistoryDTO converts StatusHistory to StatusHistoryDTO
func ToStatusHistoryDTO(history *domain.StatusHistory) domain.StatusHistoryDTO {
	return domain.StatusHistoryDTO{
		ID:             history.ID,
		OrderID:        history.OrderID,
		PreviousStatus: history.PreviousStatus,
		NewStatus:      history.NewStatus,
		ChangedBy:      history.ChangedBy,
		ChangedAt:      history.ChangedAt.Format(timeFormat),
	}
}

// daysInShop counts whole days between intake and delivery, or intake and
// now for orders still in the shop.
func daysInShop(order *domain.Order) int {
	end := time.Now()
	if order.DeliveredAt != nil {
		end = *order.DeliveredAt
	}
	days := int(end.Sub(order.ReceivedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ToOrderSummaryDTO converts Order to the compact listing shape.
// BalanceDue and DaysInShop are derived here, never read from storage.
func ToOrderSummaryDTO(order *domain.Order) domain.OrderSummaryDTO {
	dto := domain.OrderSummaryDTO{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		DeviceType:  order.DeviceType,
		Brand:       order.Brand,
		Model:       order.Model,
		Status:      order.Status,
		TotalValue:  order.TotalValue,
		DepositPaid: order.DepositPaid,
		BalanceDue:  order.BalanceDue(),
		ReceivedAt:  order.ReceivedAt.Format(timeFormat),
		DaysInShop:  daysInShop(order),
	}

	if order.Client != nil {
		dto.ClientName = order.Client.Name
		dto.ClientPhone = order.Client.Phone
	}
	if order.Branch != nil {
		dto.BranchName = order.Branch.Name
	}
	if order.DeliveredAt != nil {
		delivered := order.DeliveredAt.Format(timeFormat)
		dto.DeliveredAt = &delivered
	}

	return dto
}

// ToOrderDTO converts Order to the full detail shape
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	dto := domain.OrderDTO{
		ID:                 order.ID,
		OrderNumber:        order.OrderNumber,
		ClientID:           order.ClientID,
		BranchID:           order.BranchID,
		DeviceType:         order.DeviceType,
		Brand:              order.Brand,
		Model:              order.Model,
		Color:              order.Color,
		Serial:             order.Serial,
		AccessData:         order.AccessData,
		Accessories:        order.Accessories,
		ReportedFault:      order.ReportedFault,
		TechnicalDiagnosis: order.TechnicalDiagnosis,
		WorkPerformed:      order.WorkPerformed,
		PartsSummary:       order.PartsSummary,
		Technician:         order.Technician,
		ReceivedBy:         order.ReceivedBy,
		DeliveredTo:        order.DeliveredTo,
		Status:             order.Status,
		EstimatedCost:      order.EstimatedCost,
		PartsCost:          order.PartsCost,
		LaborCost:          order.LaborCost,
		TotalValue:         order.TotalValue,
		DepositPaid:        order.DepositPaid,
		BalanceDue:         order.BalanceDue(),
		PaymentType:        order.PaymentType,
		ReceivedAt:         order.ReceivedAt.Format(timeFormat),
		DaysInShop:         daysInShop(order),
		Notes:              order.Notes,
		CreatedAt:          order.CreatedAt.Format(timeFormat),
		UpdatedAt:          order.UpdatedAt.Format(timeFormat),
	}

	if order.Client != nil {
		client := ToClientDTO(order.Client)
		dto.Client = &client
	}
	if order.Branch != nil {
		branch := ToBranchDTO(order.Branch)
		dto.Branch = &branch
	}
	if order.EstimatedDeliveryAt != nil {
		estimated := order.EstimatedDeliveryAt.Format(timeFormat)
		dto.EstimatedDeliveryAt = &estimated
	}
	if order.DeliveredAt != nil {
		delivered := order.DeliveredAt.Format(timeFormat)
		dto.DeliveredAt = &delivered
	}

	if len(order.Parts) > 0 {
		dto.Parts = make([]domain.PartUsageDTO, len(order.Parts))
		for i := range order.Parts {
			dto.Parts[i] = ToPartUsageDTO(&order.Parts[i])
		}
	}
	if len(order.History) > 0 {
		dto.History = make([]domain.StatusHistoryDTO, len(order.History))
		for i := range order.History {
			dto.History[i] = ToStatusHistoryDTO(&order.History[i])
		}
	}

	return dto
}

// ToTransferDTO converts Transfer to TransferDTO
func ToTransferDTO(transfer *domain.Transfer) domain.TransferDTO {
	dto := domain.TransferDTO{
		ID:                  transfer.ID,
		OrderID:             transfer.OrderID,
		OriginBranchID:      transfer.OriginBranchID,
		DestinationBranchID: transfer.DestinationBranchID,
		Reason:              transfer.Reason,
		SentBy:              transfer.SentBy,
		ReceivedBy:          transfer.ReceivedBy,
		Status:              transfer.Status,
		SentAt:              transfer.SentAt.Format(timeFormat),
		Notes:               transfer.Notes,
	}

	if transfer.Order != nil {
		dto.OrderNumber = transfer.Order.OrderNumber
	}
	if transfer.OriginBranch != nil {
		dto.OriginBranchName = transfer.OriginBranch.Name
	}
	if transfer.DestinationBranch != nil {
		dto.DestinationBranchName = transfer.DestinationBranch.Name
	}
	if transfer.ReceivedAt != nil {
		received := transfer.ReceivedAt.Format(timeFormat)
		dto.ReceivedAt = &received
	}

	return dto
}
