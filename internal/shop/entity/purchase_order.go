package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order status
const (
	POStatusDraft     = "draft"
	POStatusSubmitted = "submitted"
	POStatusPartial   = "partially_received"
	POStatusReceived  = "received"
	POStatusClosed    = "closed"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder is the order header. Once items exist, the
// partially_received/received statuses are derived from the items and never
// set directly by callers.
type PurchaseOrder struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	PONumber string `json:"po_number" gorm:"size:32;uniqueIndex;not null"`
	Status   string `json:"status" gorm:"size:20;not null;default:draft"`

	VendorID   *string `json:"vendor_id" gorm:"size:36;index"`
	VendorName string  `json:"vendor_name" gorm:"size:200"` // snapshot at creation

	OrderDate     time.Time  `json:"order_date" gorm:"not null"`
	SubmittedDate *time.Time `json:"submitted_date"`
	ClosedDate    *time.Time `json:"closed_date"`

	// Financials
	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);default:0"`
	Tax      decimal.Decimal `json:"tax" gorm:"type:decimal(12,2);default:0"`
	Shipping decimal.Decimal `json:"shipping" gorm:"type:decimal(12,2);default:0"`
	Discount decimal.Decimal `json:"discount" gorm:"type:decimal(12,2);default:0"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(12,2);default:0"`

	// Ship-to snapshot, copied once at creation or via the explicit
	// drop-ship copy. Later edits to the source record do not flow back.
	ShipToName    string `json:"ship_to_name" gorm:"size:200"`
	ShipToAddress string `json:"ship_to_address" gorm:"size:300"`
	ShipToCity    string `json:"ship_to_city" gorm:"size:100"`
	ShipToState   string `json:"ship_to_state" gorm:"size:50"`
	ShipToZip     string `json:"ship_to_zip" gorm:"size:20"`
	ShipToPhone   string `json:"ship_to_phone" gorm:"size:50"`

	// Bill-to snapshot
	BillToName    string `json:"bill_to_name" gorm:"size:200"`
	BillToAddress string `json:"bill_to_address" gorm:"size:300"`
	BillToCity    string `json:"bill_to_city" gorm:"size:100"`
	BillToState   string `json:"bill_to_state" gorm:"size:50"`
	BillToZip     string `json:"bill_to_zip" gorm:"size:20"`

	Urgent   bool `json:"urgent" gorm:"default:false"`
	DropShip bool `json:"drop_ship" gorm:"default:false"`

	RequestedBy string `json:"requested_by" gorm:"size:64"`
	Notes       string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Items  []Item  `json:"items,omitempty" gorm:"foreignKey:POID;constraint:OnDelete:CASCADE"`
}

func (PurchaseOrder) TableName() string {
	return "shop_purchase_orders"
}

// Terminal reports whether the order can no longer change.
func (po *PurchaseOrder) Terminal() bool {
	return po.Status == POStatusClosed || po.Status == POStatusCancelled
}

// Line item status
const (
	ItemStatusOrdered     = "ordered"
	ItemStatusPartial     = "partially_received"
	ItemStatusReceived    = "received"
	ItemStatusBackordered = "backordered"
	ItemStatusCancelled   = "cancelled"
)

// Item is one ordered part/quantity/price line on a purchase order. Part
// identity fields are a point-in-time snapshot; later catalog edits do not
// retroactively change historical orders. QuantityReceived is mutated only
// through the receiving ledger.
type Item struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	POID string `json:"po_id" gorm:"size:36;not null;index"`

	PartID       *string `json:"part_id" gorm:"size:36;index"`
	PartNumber   string  `json:"part_number" gorm:"size:64"`
	PartName     string  `json:"part_name" gorm:"size:200"`
	Manufacturer string  `json:"manufacturer" gorm:"size:100"`
	Description  string  `json:"description" gorm:"size:300"` // custom, non-catalog lines

	QuantityOrdered     decimal.Decimal `json:"quantity_ordered" gorm:"type:decimal(12,4);not null"`
	QuantityReceived    decimal.Decimal `json:"quantity_received" gorm:"type:decimal(12,4);default:0"`
	QuantityBackordered decimal.Decimal `json:"quantity_backordered" gorm:"type:decimal(12,4);default:0"`
	QuantityCancelled   decimal.Decimal `json:"quantity_cancelled" gorm:"type:decimal(12,4);default:0"`

	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,4);default:0"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);default:0"`

	Status    string `json:"status" gorm:"size:20;not null;default:ordered"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
	Notes     string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "shop_po_items"
}

// QuantityRemaining is derived, never stored: ordered minus received minus
// cancelled. Receiving operations that would drive it negative are rejected,
// so it is always non-negative.
func (it *Item) QuantityRemaining() decimal.Decimal {
	return it.QuantityOrdered.Sub(it.QuantityReceived).Sub(it.QuantityCancelled)
}

// DeriveItemStatus computes a line item's status from its quantities.
// Cancelled is sticky: it is only entered through explicit cancellation.
func DeriveItemStatus(it *Item) string {
	if it.Status == ItemStatusCancelled {
		return ItemStatusCancelled
	}
	remaining := it.QuantityRemaining()
	switch {
	case remaining.IsZero() && it.QuantityReceived.GreaterThan(decimal.Zero):
		return ItemStatusReceived
	case it.QuantityReceived.GreaterThan(decimal.Zero):
		return ItemStatusPartial
	case it.QuantityBackordered.GreaterThan(decimal.Zero):
		return ItemStatusBackordered
	default:
		return ItemStatusOrdered
	}
}

// DeriveOrderStatus computes the order-level status from its line items:
// received iff every item is received or cancelled, partially_received iff at
// least one item has received quantity but not all are done, otherwise the
// current status is kept.
func DeriveOrderStatus(current string, items []Item) string {
	if len(items) == 0 {
		return current
	}
	allDone := true
	anyReceived := false
	for i := range items {
		if items[i].Status != ItemStatusReceived && items[i].Status != ItemStatusCancelled {
			allDone = false
		}
		if items[i].QuantityReceived.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
	}
	switch {
	case allDone:
		return POStatusReceived
	case anyReceived:
		return POStatusPartial
	default:
		return current
	}
}
