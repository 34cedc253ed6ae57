package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/testutil"
)

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func seedPO(t *testing.T, db *gorm.DB, status string, quantities ...string) (*entity.PurchaseOrder, []entity.Item) {
	t.Helper()
	po := &entity.PurchaseOrder{
		ID:       uuid.New().String(),
		PONumber: "PO-TEST-" + uuid.New().String()[:8],
		Status:   status,
	}
	if err := db.Create(po).Error; err != nil {
		t.Fatalf("Failed to seed PO: %v", err)
	}

	items := make([]entity.Item, 0, len(quantities))
	for i, q := range quantities {
		item := entity.Item{
			ID:              uuid.New().String(),
			POID:            po.ID,
			Description:     "line",
			QuantityOrdered: d(q),
			Status:          entity.ItemStatusOrdered,
			SortOrder:       i + 1,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("Failed to seed item: %v", err)
		}
		items = append(items, item)
	}
	return po, items
}

func receive(t *testing.T, repo *PORepository, itemID, qty string) *entity.Item {
	t.Helper()
	item, err := repo.Receive(context.Background(), itemID, &entity.Receiving{Quantity: d(qty)})
	if err != nil {
		t.Fatalf("Receive(%s) failed: %v", qty, err)
	}
	return item
}

func TestReceiveAccumulates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")

	item := receive(t, repo, items[0].ID, "4")
	if !item.QuantityReceived.Equal(d("4")) {
		t.Errorf("Expected received 4, got %s", item.QuantityReceived)
	}
	if item.Status != entity.ItemStatusPartial {
		t.Errorf("Expected partially_received, got %s", item.Status)
	}

	item = receive(t, repo, items[0].ID, "6")
	if !item.QuantityReceived.Equal(d("10")) {
		t.Errorf("Expected received 10, got %s", item.QuantityReceived)
	}
	if item.Status != entity.ItemStatusReceived {
		t.Errorf("Expected received, got %s", item.Status)
	}
	if !item.QuantityRemaining().IsZero() {
		t.Errorf("Expected remaining 0, got %s", item.QuantityRemaining())
	}

	// Ledger sums to the item's received quantity
	recs, err := repo.ListReceivings(ctx, items[0].ID)
	if err != nil {
		t.Fatalf("ListReceivings failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Expected 2 ledger records, got %d", len(recs))
	}
	sum := decimal.Zero
	for _, rec := range recs {
		sum = sum.Add(rec.Quantity)
	}
	if !sum.Equal(item.QuantityReceived) {
		t.Errorf("Ledger sum %s != quantity received %s", sum, item.QuantityReceived)
	}
}

func TestReceiveOverReceiptRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")
	receive(t, repo, items[0].ID, "7")

	_, err := repo.Receive(ctx, items[0].ID, &entity.Receiving{Quantity: d("4")})
	var overErr *entity.OverReceiptError
	if !errors.As(err, &overErr) {
		t.Fatalf("Expected OverReceiptError, got %v", err)
	}
	if !overErr.Remaining.Equal(d("3")) {
		t.Errorf("Expected remaining 3 in error, got %s", overErr.Remaining)
	}

	// Nothing changed: no ledger record, quantities intact
	item, err := repo.FindItemByID(ctx, items[0].ID)
	if err != nil {
		t.Fatalf("FindItemByID failed: %v", err)
	}
	if !item.QuantityReceived.Equal(d("7")) {
		t.Errorf("Expected received still 7, got %s", item.QuantityReceived)
	}
	recs, _ := repo.ListReceivings(ctx, items[0].ID)
	if len(recs) != 1 {
		t.Errorf("Expected 1 ledger record after rejected receipt, got %d", len(recs))
	}
}

func TestReceiveRejectsNonPositiveAndBadCondition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")

	var valErr *entity.ValidationError
	_, err := repo.Receive(ctx, items[0].ID, &entity.Receiving{Quantity: d("0")})
	if !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for zero quantity, got %v", err)
	}
	_, err = repo.Receive(ctx, items[0].ID, &entity.Receiving{Quantity: d("-2")})
	if !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for negative quantity, got %v", err)
	}
	_, err = repo.Receive(ctx, items[0].ID, &entity.Receiving{Quantity: d("1"), Condition: "mint"})
	if !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for unknown condition, got %v", err)
	}
}

func TestOrderStatusDerivation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	po, items := seedPO(t, db, entity.POStatusSubmitted, "10", "5")

	// First item partially received: order goes partially_received
	receive(t, repo, items[0].ID, "4")
	got, err := repo.FindByID(ctx, po.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Status != entity.POStatusPartial {
		t.Errorf("Expected partially_received, got %s", got.Status)
	}

	// Both items fully received: order goes received
	receive(t, repo, items[0].ID, "6")
	receive(t, repo, items[1].ID, "5")
	got, _ = repo.FindByID(ctx, po.ID)
	if got.Status != entity.POStatusReceived {
		t.Errorf("Expected received, got %s", got.Status)
	}
}

func TestOrderReceivedWithCancelledItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	po, items := seedPO(t, db, entity.POStatusSubmitted, "10", "5")

	receive(t, repo, items[0].ID, "10")
	if _, err := repo.CancelRemaining(ctx, items[1].ID, d("5")); err != nil {
		t.Fatalf("CancelRemaining failed: %v", err)
	}

	got, _ := repo.FindByID(ctx, po.ID)
	if got.Status != entity.POStatusReceived {
		t.Errorf("Expected received when all items received or cancelled, got %s", got.Status)
	}
}

func TestCancelRemaining(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")
	receive(t, repo, items[0].ID, "6")

	// Cancelling more than remaining is rejected
	var valErr *entity.ValidationError
	if _, err := repo.CancelRemaining(ctx, items[0].ID, d("5")); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for over-cancel, got %v", err)
	}

	// Cancelling the exact remainder finishes the line as received
	item, err := repo.CancelRemaining(ctx, items[0].ID, d("4"))
	if err != nil {
		t.Fatalf("CancelRemaining failed: %v", err)
	}
	if item.Status != entity.ItemStatusReceived {
		t.Errorf("Expected received, got %s", item.Status)
	}
	if !item.QuantityRemaining().IsZero() {
		t.Errorf("Expected remaining 0, got %s", item.QuantityRemaining())
	}
}

func TestCancelRemainingWithoutReceipts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")

	item, err := repo.CancelRemaining(ctx, items[0].ID, d("10"))
	if err != nil {
		t.Fatalf("CancelRemaining failed: %v", err)
	}
	if item.Status != entity.ItemStatusCancelled {
		t.Errorf("Expected cancelled when nothing was received, got %s", item.Status)
	}
}

func TestMarkBackordered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")

	item, err := repo.MarkBackordered(ctx, items[0].ID, d("10"))
	if err != nil {
		t.Fatalf("MarkBackordered failed: %v", err)
	}
	if item.Status != entity.ItemStatusBackordered {
		t.Errorf("Expected backordered, got %s", item.Status)
	}

	// Backordered stock remains receivable; receiving clamps the marker
	item = receive(t, repo, items[0].ID, "8")
	if item.Status != entity.ItemStatusPartial {
		t.Errorf("Expected partially_received, got %s", item.Status)
	}
	if !item.QuantityBackordered.Equal(d("2")) {
		t.Errorf("Expected backordered clamped to 2, got %s", item.QuantityBackordered)
	}

	var valErr *entity.ValidationError
	if _, err := repo.MarkBackordered(ctx, items[0].ID, d("5")); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for backorder beyond remaining, got %v", err)
	}
}

func TestDeleteReceivingRederives(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	po, items := seedPO(t, db, entity.POStatusSubmitted, "5")
	receive(t, repo, items[0].ID, "3")
	receive(t, repo, items[0].ID, "2")

	got, _ := repo.FindByID(ctx, po.ID)
	if got.Status != entity.POStatusReceived {
		t.Fatalf("Expected received before correction, got %s", got.Status)
	}

	recs, _ := repo.ListReceivings(ctx, items[0].ID)
	if err := repo.DeleteReceiving(ctx, recs[1].ID); err != nil {
		t.Fatalf("DeleteReceiving failed: %v", err)
	}

	item, _ := repo.FindItemByID(ctx, items[0].ID)
	if !item.QuantityReceived.Equal(d("3")) {
		t.Errorf("Expected received re-derived to 3, got %s", item.QuantityReceived)
	}
	if item.Status != entity.ItemStatusPartial {
		t.Errorf("Expected partially_received after correction, got %s", item.Status)
	}
	got, _ = repo.FindByID(ctx, po.ID)
	if got.Status != entity.POStatusPartial {
		t.Errorf("Expected order partially_received after correction, got %s", got.Status)
	}
}

func TestUpdateReceivingRejectsLedgerOverflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "5")
	receive(t, repo, items[0].ID, "3")
	receive(t, repo, items[0].ID, "2")

	recs, _ := repo.ListReceivings(ctx, items[0].ID)
	qty := d("4")
	_, err := repo.UpdateReceiving(ctx, recs[0].ID, &qty, nil, nil)
	var overErr *entity.OverReceiptError
	if !errors.As(err, &overErr) {
		t.Fatalf("Expected OverReceiptError, got %v", err)
	}

	// Rolled back: ledger and item untouched
	item, _ := repo.FindItemByID(ctx, items[0].ID)
	if !item.QuantityReceived.Equal(d("5")) {
		t.Errorf("Expected received still 5, got %s", item.QuantityReceived)
	}
	recs, _ = repo.ListReceivings(ctx, items[0].ID)
	if !recs[0].Quantity.Equal(d("3")) {
		t.Errorf("Expected first record still 3, got %s", recs[0].Quantity)
	}
}

func TestUpdateReceivingRederives(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	_, items := seedPO(t, db, entity.POStatusSubmitted, "10")
	receive(t, repo, items[0].ID, "6")

	recs, _ := repo.ListReceivings(ctx, items[0].ID)
	qty := d("4")
	cond := entity.ConditionDamaged
	rec, err := repo.UpdateReceiving(ctx, recs[0].ID, &qty, &cond, nil)
	if err != nil {
		t.Fatalf("UpdateReceiving failed: %v", err)
	}
	if rec.Condition != entity.ConditionDamaged {
		t.Errorf("Expected condition damaged, got %s", rec.Condition)
	}

	item, _ := repo.FindItemByID(ctx, items[0].ID)
	if !item.QuantityReceived.Equal(d("4")) {
		t.Errorf("Expected received re-derived to 4, got %s", item.QuantityReceived)
	}
}

func TestReceiveBumpsPartStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	part := testutil.SeedPart(t, db, "part-001", "224-3441", "Piston Kit")
	_, items := seedPO(t, db, entity.POStatusSubmitted, "6")
	db.Model(&entity.Item{}).Where("id = ?", items[0].ID).Update("part_id", part.ID)

	receive(t, repo, items[0].ID, "6")

	var got entity.Part
	if err := db.Where("id = ?", part.ID).First(&got).Error; err != nil {
		t.Fatalf("Failed to reload part: %v", err)
	}
	if !got.QuantityOnHand.Equal(d("6")) {
		t.Errorf("Expected on-hand 6, got %s", got.QuantityOnHand)
	}

	// The transaction rolls the stock bump back on over-receipt
	if _, err := repo.Receive(ctx, items[0].ID, &entity.Receiving{Quantity: d("1")}); err == nil {
		t.Fatal("Expected over-receipt error")
	}
	db.Where("id = ?", part.ID).First(&got)
	if !got.QuantityOnHand.Equal(d("6")) {
		t.Errorf("Expected on-hand unchanged at 6, got %s", got.QuantityOnHand)
	}
}

func TestCorrectionReversesPartStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	part := testutil.SeedPart(t, db, "part-002", "3406E-KIT", "Overhaul Kit")
	_, items := seedPO(t, db, entity.POStatusSubmitted, "5")
	db.Model(&entity.Item{}).Where("id = ?", items[0].ID).Update("part_id", part.ID)

	receive(t, repo, items[0].ID, "5")

	var got entity.Part
	db.Where("id = ?", part.ID).First(&got)
	if !got.QuantityOnHand.Equal(d("5")) {
		t.Fatalf("Expected on-hand 5 after receipt, got %s", got.QuantityOnHand)
	}

	// Deleting the only ledger record takes the stock back out
	recs, _ := repo.ListReceivings(ctx, items[0].ID)
	if err := repo.DeleteReceiving(ctx, recs[0].ID); err != nil {
		t.Fatalf("DeleteReceiving failed: %v", err)
	}
	item, _ := repo.FindItemByID(ctx, items[0].ID)
	if !item.QuantityReceived.IsZero() {
		t.Errorf("Expected received re-derived to 0, got %s", item.QuantityReceived)
	}
	db.Where("id = ?", part.ID).First(&got)
	if !got.QuantityOnHand.IsZero() {
		t.Errorf("Expected on-hand back at 0 after delete, got %s", got.QuantityOnHand)
	}

	// An edited record moves stock by the old-minus-new delta
	receive(t, repo, items[0].ID, "4")
	recs, _ = repo.ListReceivings(ctx, items[0].ID)
	qty := d("2")
	if _, err := repo.UpdateReceiving(ctx, recs[0].ID, &qty, nil, nil); err != nil {
		t.Fatalf("UpdateReceiving failed: %v", err)
	}
	db.Where("id = ?", part.ID).First(&got)
	if !got.QuantityOnHand.Equal(d("2")) {
		t.Errorf("Expected on-hand 2 after correction, got %s", got.QuantityOnHand)
	}
}

func TestCancelRemainingRefreshesTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	po, items := seedPO(t, db, entity.POStatusSubmitted, "10", "5")
	db.Model(&entity.Item{}).Where("id = ?", items[0].ID).Update("amount", d("100"))
	db.Model(&entity.Item{}).Where("id = ?", items[1].ID).Update("amount", d("50"))
	db.Model(&entity.PurchaseOrder{}).Where("id = ?", po.ID).
		Updates(map[string]interface{}{"subtotal": d("150"), "total": d("150")})

	if _, err := repo.CancelRemaining(ctx, items[1].ID, d("5")); err != nil {
		t.Fatalf("CancelRemaining failed: %v", err)
	}

	got, _ := repo.FindByID(ctx, po.ID)
	if !got.Subtotal.Equal(d("100")) {
		t.Errorf("Expected subtotal 100 without the cancelled line, got %s", got.Subtotal)
	}
	if !got.Total.Equal(d("100")) {
		t.Errorf("Expected total 100, got %s", got.Total)
	}
}

func TestTerminalOrderStatusNotRewritten(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	po, items := seedPO(t, db, entity.POStatusClosed, "10")
	receive(t, repo, items[0].ID, "10")

	got, _ := repo.FindByID(ctx, po.ID)
	if got.Status != entity.POStatusClosed {
		t.Errorf("Expected closed order to stay closed, got %s", got.Status)
	}
}

func TestGenerateNumberSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	first, err := repo.GenerateNumber(ctx)
	if err != nil {
		t.Fatalf("GenerateNumber failed: %v", err)
	}
	if err := db.Create(&entity.PurchaseOrder{
		ID: uuid.New().String(), PONumber: first, Status: entity.POStatusDraft,
	}).Error; err != nil {
		t.Fatalf("Failed to create PO: %v", err)
	}

	second, err := repo.GenerateNumber(ctx)
	if err != nil {
		t.Fatalf("GenerateNumber failed: %v", err)
	}
	if second == first {
		t.Errorf("Expected a new number, got %s twice", first)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPORepository(db)
	ctx := context.Background()

	po, items := seedPO(t, db, entity.POStatusSubmitted, "10")
	receive(t, repo, items[0].ID, "3")

	if err := repo.Delete(ctx, po.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var itemCount, recCount int64
	db.Model(&entity.Item{}).Where("po_id = ?", po.ID).Count(&itemCount)
	db.Model(&entity.Receiving{}).Where("item_id = ?", items[0].ID).Count(&recCount)
	if itemCount != 0 || recCount != 0 {
		t.Errorf("Expected items and receivings removed, got %d items, %d receivings", itemCount, recCount)
	}
}
