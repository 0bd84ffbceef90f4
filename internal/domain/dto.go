package domain

import (
	"github.com/google/uuid"
)

// APIResponse is the envelope wrapping every response body
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ClientDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	RegisteredAt string    `json:"registered_at"` // ISO 8601
}

type BranchDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	Zone      string    `json:"zone,omitempty"`
	City      string    `json:"city,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt string    `json:"created_at"` // ISO 8601
}

type PartUsageDTO struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	PriceTotal  float64   `json:"price_total"`
	CreatedAt   string    `json:"created_at"`
}

type StatusHistoryDTO struct {
	ID             uuid.UUID    `json:"id"`
	OrderID        uuid.UUID    `json:"order_id"`
	PreviousStatus *OrderStatus `json:"previous_status,omitempty"`
	NewStatus      OrderStatus  `json:"new_status"`
	ChangedBy      string       `json:"changed_by,omitempty"`
	ChangedAt      string       `json:"changed_at"`
}

// OrderSummaryDTO is the compact row shape returned by order listings.
// BalanceDue and DaysInShop are derived, never stored.
type OrderSummaryDTO struct {
	ID          uuid.UUID   `json:"id"`
	OrderNumber string      `json:"order_number"`
	ClientName  string      `json:"client_name,omitempty"`
	ClientPhone string      `json:"client_phone,omitempty"`
	BranchName  string      `json:"branch_name,omitempty"`
	DeviceType  string      `json:"device_type"`
	Brand       string      `json:"brand,omitempty"`
	Model       string      `json:"model,omitempty"`
	Status      OrderStatus `json:"status"`
	TotalValue  float64     `json:"total_value"`
	DepositPaid float64     `json:"deposit_paid"`
	BalanceDue  float64     `json:"balance_due"`
	ReceivedAt  string      `json:"received_at"`
	DeliveredAt *string     `json:"delivered_at,omitempty"`
	DaysInShop  int         `json:"days_in_shop"`
}

// OrderDTO is the full order shape with related entities
type OrderDTO struct {
	ID                  uuid.UUID          `json:"id"`
	OrderNumber         string             `json:"order_number"`
	ClientID            uuid.UUID          `json:"client_id"`
	Client              *ClientDTO         `json:"client,omitempty"`
	BranchID            uuid.UUID          `json:"branch_id"`
	Branch              *BranchDTO         `json:"branch,omitempty"`
	DeviceType          string             `json:"device_type"`
	Brand               string             `json:"brand,omitempty"`
	Model               string             `json:"model,omitempty"`
	Color               string             `json:"color,omitempty"`
	Serial              string             `json:"serial,omitempty"`
	AccessData          string             `json:"access_data,omitempty"`
	Accessories         string             `json:"accessories,omitempty"`
	ReportedFault       string             `json:"reported_fault"`
	TechnicalDiagnosis  string             `json:"technical_diagnosis,omitempty"`
	WorkPerformed       string             `json:"work_performed,omitempty"`
	PartsSummary        string             `json:"parts_summary,omitempty"`
	Technician          string             `json:"technician,omitempty"`
	ReceivedBy          string             `json:"received_by,omitempty"`
	DeliveredTo         string             `json:"delivered_to,omitempty"`
	Status              OrderStatus        `json:"status"`
	EstimatedCost       float64            `json:"estimated_cost"`
	PartsCost           float64            `json:"parts_cost"`
	LaborCost           float64            `json:"labor_cost"`
	TotalValue          float64            `json:"total_value"`
	DepositPaid         float64            `json:"deposit_paid"`
	BalanceDue          float64            `json:"balance_due"`
	PaymentType         PaymentType        `json:"payment_type"`
	ReceivedAt          string             `json:"received_at"`
	EstimatedDeliveryAt *string            `json:"estimated_delivery_at,omitempty"`
	DeliveredAt         *string            `json:"delivered_at,omitempty"`
	DaysInShop          int                `json:"days_in_shop"`
	Notes               string             `json:"notes,omitempty"`
	Parts               []PartUsageDTO     `json:"parts,omitempty"`
	History             []StatusHistoryDTO `json:"history,omitempty"`
	CreatedAt           string             `json:"created_at"`
	UpdatedAt           string             `json:"updated_at"`
}

type TransferDTO struct {
	ID                    uuid.UUID      `json:"id"`
	OrderID               uuid.UUID      `json:"order_id"`
	OrderNumber           string         `json:"order_number,omitempty"`
	OriginBranchID        uuid.UUID      `json:"origin_branch_id"`
	OriginBranchName      string         `json:"origin_branch_name,omitempty"`
	DestinationBranchID   uuid.UUID      `json:"destination_branch_id"`
	DestinationBranchName string         `json:"destination_branch_name,omitempty"`
	Reason                string         `json:"reason,omitempty"`
	SentBy                string         `json:"sent_by,omitempty"`
	ReceivedBy            string         `json:"received_by,omitempty"`
	Status                TransferStatus `json:"status"`
	SentAt                string         `json:"sent_at"`
	ReceivedAt            *string        `json:"received_at,omitempty"`
	Notes                 string         `json:"notes,omitempty"`
}

// DashboardDTO aggregates the current month plus open work per branch
type DashboardDTO struct {
	Month              string                `json:"month"` // YYYY-MM
	TotalOrders        int64                 `json:"total_orders"`
	OrdersByStatus     map[OrderStatus]int64 `json:"orders_by_status"`
	TotalBilled        float64               `json:"total_billed"`
	TotalDeposits      float64               `json:"total_deposits"`
	OutstandingBalance float64               `json:"outstanding_balance"`
	OpenOrdersByBranch []BranchOpenOrdersDTO `json:"open_orders_by_branch"`
}

type BranchOpenOrdersDTO struct {
	BranchID   uuid.UUID `json:"branch_id"`
	BranchName string    `json:"branch_name"`
	OpenOrders int64     `json:"open_orders"`
}

type DailySalesDTO struct {
	Day     string  `json:"day"` // YYYY-MM-DD
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type TopDeviceDTO struct {
	DeviceType string `json:"device_type"`
	Brand      string `json:"brand,omitempty"`
	Count      int64  `json:"count"`
}

// Request DTOs

// CreateOrderRequest captures device intake. The client may be referenced
// by id or described inline; inline clients are matched by exact phone
// before a new record is created.
type CreateOrderRequest struct {
	ClientID            *uuid.UUID  `json:"client_id,omitempty"`
	ClientName          string      `json:"client_name,omitempty" validate:"max=200"`
	ClientPhone         string      `json:"client_phone,omitempty" validate:"max=50"`
	ClientEmail         string      `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientAddress       string      `json:"client_address,omitempty" validate:"max=500"`
	ClientTaxID         string      `json:"client_tax_id,omitempty" validate:"max=50"`
	BranchID            uuid.UUID   `json:"branch_id" validate:"required"`
	DeviceType          string      `json:"device_type" validate:"required,max=100"`
	Brand               string      `json:"brand,omitempty" validate:"max=100"`
	Model               string      `json:"model,omitempty" validate:"max=100"`
	Color               string      `json:"color,omitempty" validate:"max=50"`
	Serial              string      `json:"serial,omitempty" validate:"max=100"`
	AccessData          string      `json:"access_data,omitempty" validate:"max=500"`
	Accessories         string      `json:"accessories,omitempty" validate:"max=500"`
	ReportedFault       string      `json:"reported_fault" validate:"required"`
	Technician          string      `json:"technician,omitempty" validate:"max=200"`
	ReceivedBy          string      `json:"received_by,omitempty" validate:"max=200"`
	EstimatedCost       float64     `json:"estimated_cost,omitempty" validate:"gte=0"`
	LaborCost           float64     `json:"labor_cost,omitempty" validate:"gte=0"`
	DepositPaid         float64     `json:"deposit_paid,omitempty" validate:"gte=0"`
	PaymentType         PaymentType `json:"payment_type,omitempty"`
	EstimatedDeliveryAt *string     `json:"estimated_delivery_at,omitempty"` // ISO 8601
	Notes               string      `json:"notes,omitempty"`
}

// UpdateOrderRequest carries a partial update; nil fields are left untouched.
// PartsCost and TotalValue are not accepted here, they are derived.
type UpdateOrderRequest struct {
	Status              *OrderStatus `json:"status,omitempty"`
	TechnicalDiagnosis  *string      `json:"technical_diagnosis,omitempty"`
	WorkPerformed       *string      `json:"work_performed,omitempty"`
	PartsSummary        *string      `json:"parts_summary,omitempty"`
	Technician          *string      `json:"technician,omitempty" validate:"omitempty,max=200"`
	DeliveredTo         *string      `json:"delivered_to,omitempty" validate:"omitempty,max=200"`
	EstimatedCost       *float64     `json:"estimated_cost,omitempty" validate:"omitempty,gte=0"`
	LaborCost           *float64     `json:"labor_cost,omitempty" validate:"omitempty,gte=0"`
	DepositPaid         *float64     `json:"deposit_paid,omitempty" validate:"omitempty,gte=0"`
	PaymentType         *PaymentType `json:"payment_type,omitempty"`
	EstimatedDeliveryAt *string      `json:"estimated_delivery_at,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
	ChangedBy           string       `json:"changed_by,omitempty" validate:"max=200"`
}

type AddPartRequest struct {
	OrderID     uuid.UUID `json:"order_id" validate:"required"`
	Description string    `json:"description" validate:"required,max=500"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64   `json:"unit_price" validate:"gte=0"`
}

// CreateTransferRequest opens a transfer. When OriginBranchID is omitted
// the order's current branch is used.
type CreateTransferRequest struct {
	OrderID             uuid.UUID  `json:"order_id" validate:"required"`
	OriginBranchID      *uuid.UUID `json:"origin_branch_id,omitempty"`
	DestinationBranchID uuid.UUID  `json:"destination_branch_id" validate:"required"`
	Reason              string     `json:"reason,omitempty" validate:"max=500"`
	SentBy              string     `json:"sent_by,omitempty" validate:"max=200"`
	Notes               string     `json:"notes,omitempty"`
}

type UpdateTransferRequest struct {
	Status     TransferStatus `json:"status" validate:"required"`
	ReceivedBy string         `json:"received_by,omitempty" validate:"max=200"`
	Notes      *string        `json:"notes,omitempty"`
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"max=500"`
	TaxID   string `json:"tax_id,omitempty" validate:"max=50"`
}

type UpdateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"max=500"`
	TaxID   string `json:"tax_id,omitempty" validate:"max=50"`
}

type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Zone    string `json:"zone,omitempty" validate:"max=100"`
	City    string `json:"city,omitempty" validate:"max=100"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required,max=500"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Zone    string `json:"zone,omitempty" validate:"max=100"`
	City    string `json:"city,omitempty" validate:"max=100"`
	Active  *bool  `json:"active,omitempty"`
}
