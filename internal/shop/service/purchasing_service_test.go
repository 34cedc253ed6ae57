package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stephenrocksolid/shopmgr/internal/config"
	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
	"github.com/stephenrocksolid/shopmgr/internal/shop/testutil"
)

var testShop = config.ShopConfig{
	Name:    "Rock Solid Machine",
	Address: "1420 N Industrial Dr",
	City:    "Springfield",
	State:   "MO",
	Zip:     "65803",
	Phone:   "417-555-0100",
}

func setupPurchasing(t *testing.T) (*gorm.DB, *PurchasingService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	notifier := NewNotificationService(repos.Notification)
	svc := NewPurchasingService(repos.PO, repos.Vendor, repos.Part, repos.Customer, notifier, testShop)
	return db, svc
}

func TestCreatePOSnapshotsShopAndVendor(t *testing.T) {
	db, svc := setupPurchasing(t)
	ctx := context.Background()

	vendor := testutil.SeedVendor(t, db, "v-001", "MAHLE", "MAHLE Aftermarket")

	po, err := svc.CreatePO(ctx, "user-001", &CreatePORequest{VendorID: &vendor.ID})
	if err != nil {
		t.Fatalf("CreatePO failed: %v", err)
	}
	if po.Status != entity.POStatusDraft {
		t.Errorf("Expected draft, got %s", po.Status)
	}
	if po.PONumber == "" {
		t.Error("Expected a generated PO number")
	}
	if po.VendorName != "MAHLE Aftermarket" {
		t.Errorf("Expected vendor name snapshot, got %q", po.VendorName)
	}
	if po.ShipToName != testShop.Name || po.ShipToCity != testShop.City {
		t.Errorf("Expected shop ship-to snapshot, got %q / %q", po.ShipToName, po.ShipToCity)
	}
	if po.BillToName != testShop.Name {
		t.Errorf("Expected shop bill-to snapshot, got %q", po.BillToName)
	}

	// Renaming the vendor does not rewrite the order
	vendor.Name = "MAHLE GmbH"
	db.Save(vendor)
	got, _ := svc.GetPO(ctx, po.ID)
	if got.VendorName != "MAHLE Aftermarket" {
		t.Errorf("Expected snapshot to survive vendor rename, got %q", got.VendorName)
	}
}

func TestCreatePODuplicateNumber(t *testing.T) {
	_, svc := setupPurchasing(t)
	ctx := context.Background()

	if _, err := svc.CreatePO(ctx, "user-001", &CreatePORequest{PONumber: "PO-2026-0042"}); err != nil {
		t.Fatalf("CreatePO failed: %v", err)
	}

	_, err := svc.CreatePO(ctx, "user-001", &CreatePORequest{PONumber: "PO-2026-0042"})
	var valErr *entity.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if valErr.Field != "po_number" {
		t.Errorf("Expected po_number field, got %s", valErr.Field)
	}
}

func TestAddItemSnapshotsPart(t *testing.T) {
	db, svc := setupPurchasing(t)
	ctx := context.Background()

	part := testutil.SeedPart(t, db, "p-001", "224-3441", "Piston Kit")
	db.Model(&entity.Part{}).Where("id = ?", part.ID).
		Update("unit_cost", decimal.NewFromFloat(212.50))

	po, err := svc.CreatePO(ctx, "user-001", &CreatePORequest{})
	if err != nil {
		t.Fatalf("CreatePO failed: %v", err)
	}

	item, err := svc.AddItem(ctx, po.ID, &AddItemRequest{
		PartID:   &part.ID,
		Quantity: decimal.NewFromInt(6),
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.PartNumber != "224-3441" || item.PartName != "Piston Kit" {
		t.Errorf("Expected part identity snapshot, got %q / %q", item.PartNumber, item.PartName)
	}
	if !item.UnitPrice.Equal(decimal.NewFromFloat(212.50)) {
		t.Errorf("Expected unit price defaulted from catalog, got %s", item.UnitPrice)
	}
	if !item.Amount.Equal(decimal.NewFromFloat(1275.00)) {
		t.Errorf("Expected amount 1275.00, got %s", item.Amount)
	}

	// Totals refreshed on the order
	got, _ := svc.GetPO(ctx, po.ID)
	if !got.Subtotal.Equal(decimal.NewFromFloat(1275.00)) {
		t.Errorf("Expected subtotal 1275.00, got %s", got.Subtotal)
	}
}

func TestUpdateItemDraftOnly(t *testing.T) {
	_, svc := setupPurchasing(t)
	ctx := context.Background()

	po, _ := svc.CreatePO(ctx, "user-001", &CreatePORequest{})
	item, err := svc.AddItem(ctx, po.ID, &AddItemRequest{
		Description: "gasket set",
		Quantity:    decimal.NewFromInt(4),
		UnitPrice:   decimal.NewFromFloat(30.00),
	})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	qty := decimal.NewFromInt(6)
	price := decimal.NewFromFloat(25.00)
	item, err = svc.UpdateItem(ctx, item.ID, &UpdateItemRequest{Quantity: &qty, UnitPrice: &price})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if !item.Amount.Equal(decimal.NewFromFloat(150.00)) {
		t.Errorf("Expected amount refreshed to 150.00, got %s", item.Amount)
	}
	got, _ := svc.GetPO(ctx, po.ID)
	if !got.Subtotal.Equal(decimal.NewFromFloat(150.00)) {
		t.Errorf("Expected subtotal 150.00, got %s", got.Subtotal)
	}

	var valErr *entity.ValidationError
	zero := decimal.Zero
	if _, err := svc.UpdateItem(ctx, item.ID, &UpdateItemRequest{Quantity: &zero}); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for zero quantity, got %v", err)
	}

	// Once submitted the line belongs to the receiving flow
	if _, err := svc.SubmitPO(ctx, po.ID); err != nil {
		t.Fatalf("SubmitPO failed: %v", err)
	}
	if _, err := svc.UpdateItem(ctx, item.ID, &UpdateItemRequest{Quantity: &qty}); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for edit after submit, got %v", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	_, svc := setupPurchasing(t)
	ctx := context.Background()

	po, _ := svc.CreatePO(ctx, "user-001", &CreatePORequest{})

	var valErr *entity.ValidationError
	if _, err := svc.AddItem(ctx, po.ID, &AddItemRequest{Description: "gasket", Quantity: decimal.Zero}); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for zero quantity, got %v", err)
	}
	if _, err := svc.AddItem(ctx, po.ID, &AddItemRequest{Quantity: decimal.NewFromInt(1)}); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError for missing part and description, got %v", err)
	}
}

func TestPOLifecycleGuards(t *testing.T) {
	_, svc := setupPurchasing(t)
	ctx := context.Background()

	po, _ := svc.CreatePO(ctx, "user-001", &CreatePORequest{})

	// Close before receiving anything is rejected
	var valErr *entity.ValidationError
	if _, err := svc.ClosePO(ctx, po.ID); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError closing a draft, got %v", err)
	}

	submitted, err := svc.SubmitPO(ctx, po.ID)
	if err != nil {
		t.Fatalf("SubmitPO failed: %v", err)
	}
	if submitted.Status != entity.POStatusSubmitted || submitted.SubmittedDate == nil {
		t.Errorf("Expected submitted with date, got %s", submitted.Status)
	}

	// Double submit is rejected
	if _, err := svc.SubmitPO(ctx, po.ID); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError on double submit, got %v", err)
	}

	cancelled, err := svc.CancelPO(ctx, po.ID)
	if err != nil {
		t.Fatalf("CancelPO failed: %v", err)
	}
	if cancelled.Status != entity.POStatusCancelled {
		t.Errorf("Expected cancelled, got %s", cancelled.Status)
	}

	// Terminal orders refuse new lines
	if _, err := svc.AddItem(ctx, po.ID, &AddItemRequest{Description: "late line", Quantity: decimal.NewFromInt(1)}); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError adding to cancelled order, got %v", err)
	}
}

func TestDeletePOOnlyDraft(t *testing.T) {
	_, svc := setupPurchasing(t)
	ctx := context.Background()

	po, _ := svc.CreatePO(ctx, "user-001", &CreatePORequest{})
	svc.SubmitPO(ctx, po.ID)

	var valErr *entity.ValidationError
	if err := svc.DeletePO(ctx, po.ID); !errors.As(err, &valErr) {
		t.Errorf("Expected ValidationError deleting submitted order, got %v", err)
	}

	draft, _ := svc.CreatePO(ctx, "user-001", &CreatePORequest{})
	if err := svc.DeletePO(ctx, draft.ID); err != nil {
		t.Errorf("Expected draft delete to succeed, got %v", err)
	}
}

func TestSetShipToFromCustomer(t *testing.T) {
	db, svc := setupPurchasing(t)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "c-001", "Dale Hutchins", "417-555-0148")
	db.Model(&entity.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{"address": "88 County Rd 120", "city": "Nixa", "state": "MO", "zip": "65714"})

	po, _ := svc.CreatePO(ctx, "user-001", &CreatePORequest{})
	got, err := svc.SetShipToFromCustomer(ctx, po.ID, customer.ID)
	if err != nil {
		t.Fatalf("SetShipToFromCustomer failed: %v", err)
	}
	if !got.DropShip {
		t.Error("Expected drop_ship flag set")
	}
	if got.ShipToName != "Dale Hutchins" || got.ShipToCity != "Nixa" {
		t.Errorf("Expected customer ship-to copy, got %q / %q", got.ShipToName, got.ShipToCity)
	}
	// Bill-to stays the shop
	if got.BillToName != testShop.Name {
		t.Errorf("Expected bill-to unchanged, got %q", got.BillToName)
	}

	// Later customer edits do not flow back
	db.Model(&entity.Customer{}).Where("id = ?", customer.ID).Update("city", "Ozark")
	reloaded, _ := svc.GetPO(ctx, po.ID)
	if reloaded.ShipToCity != "Nixa" {
		t.Errorf("Expected ship-to snapshot to survive customer edit, got %q", reloaded.ShipToCity)
	}
}

func TestReceiveItemNotifies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	notifier := NewNotificationService(repos.Notification)
	svc := NewPurchasingService(repos.PO, repos.Vendor, repos.Part, repos.Customer, notifier, testShop)
	ctx := context.Background()

	part := testutil.SeedPart(t, db, "p-001", "MS-2034P", "Main Bearing Set")
	db.Model(&entity.Part{}).Where("id = ?", part.ID).
		Update("reorder_level", decimal.NewFromInt(10))

	po, _ := svc.CreatePO(ctx, "buyer-01", &CreatePORequest{})
	item, err := svc.AddItem(ctx, po.ID, &AddItemRequest{PartID: &part.ID, Quantity: decimal.NewFromInt(2)})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	svc.SubmitPO(ctx, po.ID)

	if _, err := svc.ReceiveItem(ctx, item.ID, "dock-01", &ReceiveRequest{Quantity: decimal.NewFromInt(2)}); err != nil {
		t.Fatalf("ReceiveItem failed: %v", err)
	}

	// Order fully received and part still below reorder: two notifications
	notifs, total, err := notifier.List(ctx, "buyer-01", false, 1, 20)
	if err != nil {
		t.Fatalf("List notifications failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("Expected 2 notifications, got %d", total)
	}
	types := map[string]bool{}
	for _, n := range notifs {
		types[n.Type] = true
	}
	if !types[entity.NotifyPOReceived] || !types[entity.NotifyPartLowStock] {
		t.Errorf("Expected po_received and part_low_stock, got %v", types)
	}
}
