package domain_test

import (
	"testing"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
)

func TestOrderStatus_IsValid(t *testing.T) {
	valid := []domain.OrderStatus{
		domain.OrderStatusReceived,
		domain.OrderStatusInDiagnosis,
		domain.OrderStatusAwaitingParts,
		domain.OrderStatusInRepair,
		domain.OrderStatusRepaired,
		domain.OrderStatusReadyForDelivery,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
		domain.OrderStatusNotRepairable,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}

	invalid := []domain.OrderStatus{"", "unknown", "Received", "DELIVERED"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{"received to in_diagnosis", domain.OrderStatusReceived, domain.OrderStatusInDiagnosis, true},
		{"received straight to delivered", domain.OrderStatusReceived, domain.OrderStatusDelivered, true},
		{"in_repair back to in_diagnosis", domain.OrderStatusInRepair, domain.OrderStatusInDiagnosis, true},
		{"ready_for_delivery to delivered", domain.OrderStatusReadyForDelivery, domain.OrderStatusDelivered, true},
		{"any open state to cancelled", domain.OrderStatusAwaitingParts, domain.OrderStatusCancelled, true},
		{"same status is a no-op", domain.OrderStatusInRepair, domain.OrderStatusInRepair, true},
		{"same terminal status is a no-op", domain.OrderStatusDelivered, domain.OrderStatusDelivered, true},
		{"delivered cannot reopen", domain.OrderStatusDelivered, domain.OrderStatusInRepair, false},
		{"cancelled cannot reopen", domain.OrderStatusCancelled, domain.OrderStatusReceived, false},
		{"not_repairable cannot deliver", domain.OrderStatusNotRepairable, domain.OrderStatusDelivered, false},
		{"unknown target rejected", domain.OrderStatusReceived, domain.OrderStatus("lost"), false},
		{"unknown source rejected", domain.OrderStatus("lost"), domain.OrderStatusReceived, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	terminal := []domain.OrderStatus{
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
		domain.OrderStatusNotRepairable,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%q) = false, want true", s)
		}
	}

	open := []domain.OrderStatus{
		domain.OrderStatusReceived,
		domain.OrderStatusInDiagnosis,
		domain.OrderStatusAwaitingParts,
		domain.OrderStatusInRepair,
		domain.OrderStatusRepaired,
		domain.OrderStatusReadyForDelivery,
	}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%q) = true, want false", s)
		}
	}
}

func TestTransferStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TransferStatus
		to      domain.TransferStatus
		allowed bool
	}{
		{"pending to in_transit", domain.TransferStatusPending, domain.TransferStatusInTransit, true},
		{"pending to cancelled", domain.TransferStatusPending, domain.TransferStatusCancelled, true},
		{"in_transit to received", domain.TransferStatusInTransit, domain.TransferStatusReceived, true},
		{"in_transit to cancelled", domain.TransferStatusInTransit, domain.TransferStatusCancelled, true},
		{"pending cannot skip to received", domain.TransferStatusPending, domain.TransferStatusReceived, false},
		{"received is terminal", domain.TransferStatusReceived, domain.TransferStatusInTransit, false},
		{"cancelled is terminal", domain.TransferStatusCancelled, domain.TransferStatusPending, false},
		{"in_transit cannot go back", domain.TransferStatusInTransit, domain.TransferStatusPending, false},
		{"same status is not a transition", domain.TransferStatusPending, domain.TransferStatusPending, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
				t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestTransferStatus_IsTerminal(t *testing.T) {
	if !domain.TransferStatusReceived.IsTerminal() {
		t.Error("received should be terminal")
	}
	if !domain.TransferStatusCancelled.IsTerminal() {
		t.Error("cancelled should be terminal")
	}
	if domain.TransferStatusPending.IsTerminal() {
		t.Error("pending should not be terminal")
	}
	if domain.TransferStatusInTransit.IsTerminal() {
		t.Error("in_transit should not be terminal")
	}
	if domain.TransferStatus("lost").IsTerminal() {
		t.Error("unknown status should not report terminal")
	}
}

func TestPaymentType_IsValid(t *testing.T) {
	for _, p := range []domain.PaymentType{
		domain.PaymentTypeCash,
		domain.PaymentTypeCard,
		domain.PaymentTypeTransfer,
		domain.PaymentTypeOther,
	} {
		if !p.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", p)
		}
	}
	if domain.PaymentType("crypto").IsValid() {
		t.Error("unknown payment type should be invalid")
	}
}

func TestOrder_ComputeTotal(t *testing.T) {
	order := &domain.Order{
		EstimatedCost: 100,
		PartsCost:     50,
		LaborCost:     25.5,
		DepositPaid:   60,
	}
	order.ComputeTotal()

	if order.TotalValue != 175.5 {
		t.Errorf("TotalValue = %v, want 175.5", order.TotalValue)
	}
	if order.BalanceDue() != 115.5 {
		t.Errorf("BalanceDue() = %v, want 115.5", order.BalanceDue())
	}
}
