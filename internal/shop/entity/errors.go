package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError marks malformed or out-of-range input. The Field names the
// triggering field so callers can surface it next to the form control.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OverReceiptError is returned when a receiving event would drive a line
// item's remaining quantity negative. The operation leaves no partial state.
type OverReceiptError struct {
	ItemID    string
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("cannot receive %s against item %s: only %s remaining",
		e.Requested, e.ItemID, e.Remaining)
}

// ProtectedReferenceError is returned when deleting a record that historical
// orders or jobs still reference.
type ProtectedReferenceError struct {
	Entity string
	ID     string
	Refs   int64
}

func (e *ProtectedReferenceError) Error() string {
	return fmt.Sprintf("%s %s is referenced by %d record(s) and cannot be deleted",
		e.Entity, e.ID, e.Refs)
}
