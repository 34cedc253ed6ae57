package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func TestQuantityRemaining(t *testing.T) {
	item := &Item{
		QuantityOrdered:   d("10"),
		QuantityReceived:  d("4"),
		QuantityCancelled: d("2"),
	}
	if got := item.QuantityRemaining(); !got.Equal(d("4")) {
		t.Errorf("Expected remaining 4, got %s", got)
	}

	// Backordered is a marker, not a quantity bucket
	item.QuantityBackordered = d("4")
	if got := item.QuantityRemaining(); !got.Equal(d("4")) {
		t.Errorf("Expected remaining unchanged by backorder, got %s", got)
	}
}

func TestDeriveItemStatus(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected string
	}{
		{"nothing received", Item{QuantityOrdered: d("10")}, ItemStatusOrdered},
		{"partial", Item{QuantityOrdered: d("10"), QuantityReceived: d("3")}, ItemStatusPartial},
		{"fully received", Item{QuantityOrdered: d("10"), QuantityReceived: d("10")}, ItemStatusReceived},
		{"received plus cancelled remainder", Item{QuantityOrdered: d("10"), QuantityReceived: d("6"), QuantityCancelled: d("4")}, ItemStatusReceived},
		{"backordered", Item{QuantityOrdered: d("10"), QuantityBackordered: d("10")}, ItemStatusBackordered},
		{"received wins over backordered", Item{QuantityOrdered: d("10"), QuantityReceived: d("2"), QuantityBackordered: d("8")}, ItemStatusPartial},
		{"cancelled is sticky", Item{QuantityOrdered: d("10"), QuantityReceived: d("10"), Status: ItemStatusCancelled}, ItemStatusCancelled},
		{"fractional receipt", Item{QuantityOrdered: d("2.5"), QuantityReceived: d("2.5")}, ItemStatusReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveItemStatus(&tt.item); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDeriveOrderStatus(t *testing.T) {
	received := Item{QuantityOrdered: d("5"), QuantityReceived: d("5"), Status: ItemStatusReceived}
	partial := Item{QuantityOrdered: d("10"), QuantityReceived: d("4"), Status: ItemStatusPartial}
	ordered := Item{QuantityOrdered: d("10"), Status: ItemStatusOrdered}
	cancelled := Item{QuantityOrdered: d("3"), Status: ItemStatusCancelled}

	tests := []struct {
		name     string
		current  string
		items    []Item
		expected string
	}{
		{"no items keeps current", POStatusSubmitted, nil, POStatusSubmitted},
		{"all received", POStatusSubmitted, []Item{received, received}, POStatusReceived},
		{"received and cancelled count as done", POStatusSubmitted, []Item{received, cancelled}, POStatusReceived},
		{"one partial", POStatusSubmitted, []Item{received, partial}, POStatusPartial},
		{"partial alone", POStatusSubmitted, []Item{partial, ordered}, POStatusPartial},
		{"nothing received keeps current", POStatusSubmitted, []Item{ordered, ordered}, POStatusSubmitted},
		{"all cancelled", POStatusSubmitted, []Item{cancelled}, POStatusReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveOrderStatus(tt.current, tt.items); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	for _, status := range []string{POStatusDraft, POStatusSubmitted, POStatusPartial, POStatusReceived} {
		po := &PurchaseOrder{Status: status}
		if po.Terminal() {
			t.Errorf("Expected %s to be non-terminal", status)
		}
	}
	for _, status := range []string{POStatusClosed, POStatusCancelled} {
		po := &PurchaseOrder{Status: status}
		if !po.Terminal() {
			t.Errorf("Expected %s to be terminal", status)
		}
	}
}

func TestValidCondition(t *testing.T) {
	for _, c := range []string{ConditionGood, ConditionDamaged, ConditionWrongItem, ConditionIncomplete} {
		if !ValidCondition(c) {
			t.Errorf("Expected %s to be valid", c)
		}
	}
	if ValidCondition("pristine") {
		t.Error("Expected unknown condition to be invalid")
	}
}
