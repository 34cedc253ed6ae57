package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
)

// PORepository owns purchase orders, their line items, and the receiving
// ledger. Every quantity-mutating path runs inside one transaction spanning
// the ledger write, the item update, and the order status recomputation.
type PORepository struct {
	db *gorm.DB
}

func NewPORepository(db *gorm.DB) *PORepository {
	return &PORepository{db: db}
}

// POListParams filters the order list.
type POListParams struct {
	Status   string
	VendorID string
	Search   string
	Urgent   bool
	Page     int
	PageSize int
}

// FindAll lists purchase orders, newest first.
func (r *PORepository) FindAll(ctx context.Context, params POListParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.VendorID != "" {
		query = query.Where("vendor_id = ?", params.VendorID)
	}
	if params.Search != "" {
		query = query.Where("po_number LIKE ?", "%"+params.Search+"%")
	}
	if params.Urgent {
		query = query.Where("urgent = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Preload("Vendor").
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(params.PageSize).
		Find(&orders).Error

	return orders, total, err
}

// FindByID loads an order with its vendor and items.
func (r *PORepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// ExistsByNumber reports whether an order already uses the given PO number.
func (r *PORepository) ExistsByNumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PurchaseOrder{}).
		Where("po_number = ?", poNumber).
		Count(&count).Error
	return count > 0, err
}

// Create inserts an order with its items.
func (r *PORepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// Update saves header fields.
func (r *PORepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

// Delete removes an order, its items, and their receiving records.
func (r *PORepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []string
		if err := tx.Model(&entity.Item{}).Where("po_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&entity.Receiving{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("po_id = ?", id).Delete(&entity.Item{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.PurchaseOrder{}).Error
	})
}

// GenerateNumber produces the next PO number, PO-{year}-{seq}.
func (r *PORepository) GenerateNumber(ctx context.Context) (string, error) {
	year := time.Now().Format("2006")
	prefix := fmt.Sprintf("PO-%s-", year)

	var maxNumber string
	err := r.db.WithContext(ctx).
		Model(&entity.PurchaseOrder{}).
		Select("COALESCE(MAX(po_number), '')").
		Where("po_number LIKE ?", prefix+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, "PO-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("PO-%s-%04d", year, seq), nil
}

// --- Items ---

// FindItemByID loads a single line item.
func (r *PORepository) FindItemByID(ctx context.Context, itemID string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem appends a line item and refreshes the order totals.
func (r *PORepository) CreateItem(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return r.recomputeTotals(tx, item.POID)
	})
}

// UpdateItem saves a line item and refreshes the order totals.
func (r *PORepository) UpdateItem(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return r.recomputeTotals(tx, item.POID)
	})
}

// CancelRemaining moves qty from a line item's remaining quantity into its
// cancelled quantity, then re-derives item and order status.
func (r *PORepository) CancelRemaining(ctx context.Context, itemID string, qty decimal.Decimal) (*entity.Item, error) {
	var out entity.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := r.lockItem(tx, itemID)
		if err != nil {
			return err
		}
		if qty.LessThanOrEqual(decimal.Zero) {
			return &entity.ValidationError{Field: "quantity", Message: "must be greater than zero"}
		}
		if qty.GreaterThan(item.QuantityRemaining()) {
			return &entity.ValidationError{Field: "quantity", Message: "exceeds quantity remaining"}
		}

		item.QuantityCancelled = item.QuantityCancelled.Add(qty)
		clampBackorder(item)
		if item.QuantityRemaining().IsZero() && item.QuantityReceived.IsZero() {
			item.Status = entity.ItemStatusCancelled
		} else {
			item.Status = entity.DeriveItemStatus(item)
		}
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		if err := r.recomputeTotals(tx, item.POID); err != nil {
			return err
		}
		if err := r.recomputeOrderStatus(tx, item.POID); err != nil {
			return err
		}
		out = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkBackordered flags qty of a line item's remaining quantity as reported
// backordered by the vendor. The quantity stays receivable.
func (r *PORepository) MarkBackordered(ctx context.Context, itemID string, qty decimal.Decimal) (*entity.Item, error) {
	var out entity.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := r.lockItem(tx, itemID)
		if err != nil {
			return err
		}
		if qty.LessThan(decimal.Zero) {
			return &entity.ValidationError{Field: "quantity", Message: "must not be negative"}
		}
		if qty.GreaterThan(item.QuantityRemaining()) {
			return &entity.ValidationError{Field: "quantity", Message: "exceeds quantity remaining"}
		}
		item.QuantityBackordered = qty
		item.Status = entity.DeriveItemStatus(item)
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		out = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Receiving ledger ---

// Receive appends a receiving record and, in the same transaction, increments
// the item's received quantity, re-derives the item status, bumps catalog
// stock for part-linked lines, and recomputes the parent order status. Either
// everything commits or nothing does.
func (r *PORepository) Receive(ctx context.Context, itemID string, rec *entity.Receiving) (*entity.Item, error) {
	var out entity.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := r.lockItem(tx, itemID)
		if err != nil {
			return err
		}
		if rec.Quantity.LessThanOrEqual(decimal.Zero) {
			return &entity.ValidationError{Field: "quantity", Message: "must be greater than zero"}
		}
		remaining := item.QuantityRemaining()
		if rec.Quantity.GreaterThan(remaining) {
			return &entity.OverReceiptError{ItemID: item.ID, Requested: rec.Quantity, Remaining: remaining}
		}
		if rec.Condition == "" {
			rec.Condition = entity.ConditionGood
		}
		if !entity.ValidCondition(rec.Condition) {
			return &entity.ValidationError{Field: "condition", Message: "unknown receiving condition"}
		}

		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		rec.ItemID = item.ID
		if rec.ReceivedDate.IsZero() {
			rec.ReceivedDate = time.Now()
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		item.QuantityReceived = item.QuantityReceived.Add(rec.Quantity)
		clampBackorder(item)
		item.Status = entity.DeriveItemStatus(item)
		if err := tx.Save(item).Error; err != nil {
			return err
		}

		if item.PartID != nil {
			err := tx.Model(&entity.Part{}).
				Where("id = ?", *item.PartID).
				Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", rec.Quantity)).Error
			if err != nil {
				return err
			}
		}

		if err := r.recomputeOrderStatus(tx, item.POID); err != nil {
			return err
		}
		out = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReceivings returns the ledger for a line item, oldest first.
func (r *PORepository) ListReceivings(ctx context.Context, itemID string) ([]entity.Receiving, error) {
	var recs []entity.Receiving
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("received_date ASC, created_at ASC").
		Find(&recs).Error
	return recs, err
}

// UpdateReceiving is the administrative correction path: it rewrites one
// ledger record, then re-derives the item's received quantity as the sum of
// all records rather than adjusting by the delta.
func (r *PORepository) UpdateReceiving(ctx context.Context, recID string, quantity *decimal.Decimal, condition, notes *string) (*entity.Receiving, error) {
	var out entity.Receiving
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec entity.Receiving
		if err := tx.Where("id = ?", recID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		item, err := r.lockItem(tx, rec.ItemID)
		if err != nil {
			return err
		}

		if quantity != nil {
			if quantity.LessThanOrEqual(decimal.Zero) {
				return &entity.ValidationError{Field: "quantity", Message: "must be greater than zero"}
			}
			rec.Quantity = *quantity
		}
		if condition != nil {
			if !entity.ValidCondition(*condition) {
				return &entity.ValidationError{Field: "condition", Message: "unknown receiving condition"}
			}
			rec.Condition = *condition
		}
		if notes != nil {
			rec.Notes = *notes
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		if err := r.rederiveFromLedger(tx, item); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReceiving removes one ledger record and re-derives the item's
// received quantity from the surviving records.
func (r *PORepository) DeleteReceiving(ctx context.Context, recID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec entity.Receiving
		if err := tx.Where("id = ?", recID).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		item, err := r.lockItem(tx, rec.ItemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return err
		}
		return r.rederiveFromLedger(tx, item)
	})
}

// --- internal ---

func (r *PORepository) lockItem(tx *gorm.DB, itemID string) (*entity.Item, error) {
	var item entity.Item
	err := lockForUpdate(tx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// rederiveFromLedger recomputes quantity_received as the sum of the item's
// surviving receiving records, validates it against the ordered quantity,
// applies the resulting stock delta to the linked part, and re-runs the item
// and order status derivation. Callers pass the item as loaded before the
// ledger change so the previous received quantity is still on it.
func (r *PORepository) rederiveFromLedger(tx *gorm.DB, item *entity.Item) error {
	var recs []entity.Receiving
	if err := tx.Where("item_id = ?", item.ID).Find(&recs).Error; err != nil {
		return err
	}
	sum := decimal.Zero
	for i := range recs {
		sum = sum.Add(recs[i].Quantity)
	}
	if sum.GreaterThan(item.QuantityOrdered.Sub(item.QuantityCancelled)) {
		return &entity.OverReceiptError{
			ItemID:    item.ID,
			Requested: sum,
			Remaining: item.QuantityOrdered.Sub(item.QuantityCancelled),
		}
	}
	delta := sum.Sub(item.QuantityReceived)
	item.QuantityReceived = sum
	clampBackorder(item)
	item.Status = entity.DeriveItemStatus(item)
	if err := tx.Save(item).Error; err != nil {
		return err
	}
	if item.PartID != nil && !delta.IsZero() {
		err := tx.Model(&entity.Part{}).
			Where("id = ?", *item.PartID).
			Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", delta)).Error
		if err != nil {
			return err
		}
	}
	return r.recomputeOrderStatus(tx, item.POID)
}

// recomputeOrderStatus re-derives the order-level status from all sibling
// items within the caller's transaction.
func (r *PORepository) recomputeOrderStatus(tx *gorm.DB, poID string) error {
	var po entity.PurchaseOrder
	if err := tx.Where("id = ?", poID).First(&po).Error; err != nil {
		return err
	}
	if po.Terminal() {
		return nil
	}
	var items []entity.Item
	if err := tx.Where("po_id = ?", poID).Find(&items).Error; err != nil {
		return err
	}
	derived := entity.DeriveOrderStatus(po.Status, items)
	if derived == po.Status {
		return nil
	}
	return tx.Model(&entity.PurchaseOrder{}).
		Where("id = ?", poID).
		Update("status", derived).Error
}

// recomputeTotals refreshes subtotal and total from the line amounts.
func (r *PORepository) recomputeTotals(tx *gorm.DB, poID string) error {
	var po entity.PurchaseOrder
	if err := tx.Where("id = ?", poID).First(&po).Error; err != nil {
		return err
	}
	var items []entity.Item
	if err := tx.Where("po_id = ?", poID).Find(&items).Error; err != nil {
		return err
	}
	subtotal := decimal.Zero
	for i := range items {
		if items[i].Status != entity.ItemStatusCancelled {
			subtotal = subtotal.Add(items[i].Amount)
		}
	}
	po.Subtotal = subtotal
	po.Total = subtotal.Add(po.Tax).Add(po.Shipping).Sub(po.Discount)
	return tx.Save(&po).Error
}

// clampBackorder keeps the backorder marking within what is still
// outstanding on the line.
func clampBackorder(item *entity.Item) {
	if item.QuantityBackordered.GreaterThan(item.QuantityRemaining()) {
		item.QuantityBackordered = item.QuantityRemaining()
	}
	if item.QuantityBackordered.LessThan(decimal.Zero) {
		item.QuantityBackordered = decimal.Zero
	}
}
