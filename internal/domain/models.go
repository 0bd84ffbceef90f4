package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when none was provided. Generating IDs in the
// application keeps the schema portable between postgres and sqlite.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// OrderStatus represents the repair lifecycle state of an order
type OrderStatus string

const (
	OrderStatusReceived         OrderStatus = "received"
	OrderStatusInDiagnosis      OrderStatus = "in_diagnosis"
	OrderStatusAwaitingParts    OrderStatus = "awaiting_parts"
	OrderStatusInRepair         OrderStatus = "in_repair"
	OrderStatusRepaired         OrderStatus = "repaired"
	OrderStatusReadyForDelivery OrderStatus = "ready_for_delivery"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCancelled        OrderStatus = "cancelled"
	OrderStatusNotRepairable    OrderStatus = "not_repairable"
)

// IsValid checks if the OrderStatus is a valid enum value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusInDiagnosis, OrderStatusAwaitingParts,
		OrderStatusInRepair, OrderStatusRepaired, OrderStatusReadyForDelivery,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusNotRepairable:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted from s
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusNotRepairable:
		return true
	}
	return false
}

// CanTransitionTo validates an order status transition. Staff may move an
// order freely between non-terminal states; terminal states cannot be left.
// A same-status save is treated as a no-op transition and is always allowed.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if !s.IsValid() || !to.IsValid() {
		return false
	}
	if s == to {
		return true
	}
	return !s.IsTerminal()
}

// TransferStatus represents the state of a device transfer between branches
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusInTransit TransferStatus = "in_transit"
	TransferStatusReceived  TransferStatus = "received"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// Transfer transition rules: a transfer moves pending -> in_transit ->
// received, and may be cancelled until the device has been received.
var validTransferTransitions = map[TransferStatus][]TransferStatus{
	TransferStatusPending:   {TransferStatusInTransit, TransferStatusCancelled},
	TransferStatusInTransit: {TransferStatusReceived, TransferStatusCancelled},
	TransferStatusReceived:  {},
	TransferStatusCancelled: {},
}

// IsValid checks if the TransferStatus is a valid enum value
func (s TransferStatus) IsValid() bool {
	_, ok := validTransferTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted from s
func (s TransferStatus) IsTerminal() bool {
	return s.IsValid() && len(validTransferTransitions[s]) == 0
}

// CanTransitionTo validates a transfer status transition
func (s TransferStatus) CanTransitionTo(to TransferStatus) bool {
	for _, next := range validTransferTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentType represents how the client settles an order
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeCard     PaymentType = "card"
	PaymentTypeTransfer PaymentType = "bank_transfer"
	PaymentTypeOther    PaymentType = "other"
)

// IsValid checks if the PaymentType is a valid enum value
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeTransfer, PaymentTypeOther:
		return true
	}
	return false
}

// Client represents a customer who drops off devices for repair.
// Clients are deduplicated by exact phone match on order intake and are
// never deleted.
type Client struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Phone   string `gorm:"type:varchar(50);not null;index"`
	Email   string `gorm:"type:varchar(255)"`
	Address string `gorm:"type:varchar(500)"`
	TaxID   string `gorm:"type:varchar(50);column:tax_id"`
}

// Branch represents a physical shop location. Branches are deactivated
// rather than removed so historical orders keep a valid reference.
type Branch struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Address string `gorm:"type:varchar(500);not null"`
	Phone   string `gorm:"type:varchar(50)"`
	Zone    string `gorm:"type:varchar(100)"`
	City    string `gorm:"type:varchar(100)"`
	Active  bool   `gorm:"not null;default:true;index"`
}

// Order represents one repair job for one device, from intake to delivery
// or cancellation.
//
// TotalValue is always EstimatedCost + PartsCost + LaborCost, and PartsCost
// is always the sum of PriceTotal over the order's part usages. Both are
// recomputed inside the same transaction as any mutation touching them.
// The outstanding balance (TotalValue - DepositPaid) is never stored; it is
// derived at the response edge.
type Order struct {
	BaseModel
	OrderNumber         string          `gorm:"type:varchar(50);not null;uniqueIndex;column:order_number"`
	ClientID            uuid.UUID       `gorm:"type:uuid;not null;index;column:client_id"`
	Client              *Client         `gorm:"foreignKey:ClientID"`
	BranchID            uuid.UUID       `gorm:"type:uuid;not null;index;column:branch_id"`
	Branch              *Branch         `gorm:"foreignKey:BranchID"`
	DeviceType          string          `gorm:"type:varchar(100);not null;column:device_type"`
	Brand               string          `gorm:"type:varchar(100)"`
	Model               string          `gorm:"type:varchar(100)"`
	Color               string          `gorm:"type:varchar(50)"`
	Serial              string          `gorm:"type:varchar(100)"`
	AccessData          string          `gorm:"type:varchar(500);column:access_data"` // device unlock data, kept out of logs
	Accessories         string          `gorm:"type:varchar(500)"`
	ReportedFault       string          `gorm:"type:text;not null;column:reported_fault"`
	TechnicalDiagnosis  string          `gorm:"type:text;column:technical_diagnosis"`
	WorkPerformed       string          `gorm:"type:text;column:work_performed"`
	PartsSummary        string          `gorm:"type:text;column:parts_summary"`
	Technician          string          `gorm:"type:varchar(200)"`
	ReceivedBy          string          `gorm:"type:varchar(200);column:received_by"`
	DeliveredTo         string          `gorm:"type:varchar(200);column:delivered_to"`
	Status              OrderStatus     `gorm:"type:varchar(50);not null;default:'received';index"`
	EstimatedCost       float64         `gorm:"type:decimal(15,2);not null;default:0;column:estimated_cost"`
	PartsCost           float64         `gorm:"type:decimal(15,2);not null;default:0;column:parts_cost"`
	LaborCost           float64         `gorm:"type:decimal(15,2);not null;default:0;column:labor_cost"`
	TotalValue          float64         `gorm:"type:decimal(15,2);not null;default:0;column:total_value"`
	DepositPaid         float64         `gorm:"type:decimal(15,2);not null;default:0;column:deposit_paid"`
	PaymentType         PaymentType     `gorm:"type:varchar(50);not null;default:'cash';column:payment_type"`
	ReceivedAt          time.Time       `gorm:"not null;index;column:received_at"`
	EstimatedDeliveryAt *time.Time      `gorm:"column:estimated_delivery_at"`
	DeliveredAt         *time.Time      `gorm:"column:delivered_at"`
	Notes               string          `gorm:"type:text"`
	Parts               []PartUsage     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History             []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// ComputeTotal re-derives TotalValue from the three cost components
func (o *Order) ComputeTotal() {
	o.TotalValue = o.EstimatedCost + o.PartsCost + o.LaborCost
}

// BalanceDue returns the amount the client still owes
func (o *Order) BalanceDue() float64 {
	return o.TotalValue - o.DepositPaid
}

// PartUsage is a billable line item for a physical part consumed by a repair
type PartUsage struct {
	BaseModel
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index;column:order_id"`
	Order       *Order    `gorm:"foreignKey:OrderID"`
	Description string    `gorm:"type:varchar(500);not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   float64   `gorm:"type:decimal(15,2);not null;column:unit_price"`
	PriceTotal  float64   `gorm:"type:decimal(15,2);not null;column:price_total"`
}

// TableName overrides the default table name
func (PartUsage) TableName() string {
	return "part_usages"
}

// Transfer represents the movement of an order's device between two branches
type Transfer struct {
	BaseModel
	OrderID             uuid.UUID      `gorm:"type:uuid;not null;index;column:order_id"`
	Order               *Order         `gorm:"foreignKey:OrderID"`
	OriginBranchID      uuid.UUID      `gorm:"type:uuid;not null;column:origin_branch_id"`
	OriginBranch        *Branch        `gorm:"foreignKey:OriginBranchID"`
	DestinationBranchID uuid.UUID      `gorm:"type:uuid;not null;column:destination_branch_id"`
	DestinationBranch   *Branch        `gorm:"foreignKey:DestinationBranchID"`
	Reason              string         `gorm:"type:varchar(500)"`
	SentBy              string         `gorm:"type:varchar(200);column:sent_by"`
	ReceivedBy          string         `gorm:"type:varchar(200);column:received_by"`
	Status              TransferStatus `gorm:"type:varchar(50);not null;default:'pending';index"`
	SentAt              time.Time      `gorm:"not null;index;column:sent_at"`
	ReceivedAt          *time.Time     `gorm:"column:received_at"`
	Notes               string         `gorm:"type:text"`
}

// StatusHistory is an append-only record of order status transitions.
// A row is written inside the same transaction as every status change.
type StatusHistory struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key"`
	OrderID        uuid.UUID    `gorm:"type:uuid;not null;index;column:order_id"`
	PreviousStatus *OrderStatus `gorm:"type:varchar(50);column:previous_status"`
	NewStatus      OrderStatus  `gorm:"type:varchar(50);not null;column:new_status"`
	ChangedBy      string       `gorm:"type:varchar(200);column:changed_by"`
	ChangedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;column:changed_at"`
}

// TableName overrides the default table name
func (StatusHistory) TableName() string {
	return "order_status_history"
}

// BeforeCreate assigns an ID when none was provided
func (h *StatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// OrderSequence holds the per-day counter backing order number generation.
// Rows are locked FOR UPDATE so concurrent intakes never share a number.
type OrderSequence struct {
	ID           uint      `gorm:"primaryKey"`
	Day          string    `gorm:"type:varchar(8);not null;uniqueIndex"` // YYYYMMDD
	LastSequence int       `gorm:"not null;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the default table name
func (OrderSequence) TableName() string {
	return "order_sequences"
}
