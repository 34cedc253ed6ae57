package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
	"github.com/stephenrocksolid/shopmgr/internal/shop/testutil"
)

func TestVendorCRUDAndProtectedDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()
	repos := repository.NewRepositories(db)
	handler := NewVendorHandler(service.NewVendorService(repos.Vendor))

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/vendors", handler.ListVendors)
	api.POST("/vendors", handler.CreateVendor)
	api.DELETE("/vendors/:id", handler.DeleteVendor)

	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/vendors",
		map[string]interface{}{"code": "MAHLE", "name": "MAHLE Aftermarket"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	vendorID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// Duplicate code rejected
	w = testutil.DoRequest(router, "POST", "/api/v1/vendors",
		map[string]interface{}{"code": "MAHLE", "name": "Duplicate"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate code, got %d: %s", w.Code, w.Body.String())
	}

	// Referencing order blocks deletion
	db.Create(&entity.PurchaseOrder{
		ID: uuid.New().String(), PONumber: "PO-2026-0001",
		Status: entity.POStatusDraft, VendorID: &vendorID,
	})
	w = testutil.DoRequest(router, "DELETE", "/api/v1/vendors/"+vendorID, nil, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for referenced vendor, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPartAdjustStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()
	repos := repository.NewRepositories(db)
	handler := NewPartHandler(service.NewInventoryService(repos.Part, repos.Engine))

	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/parts/:id/adjust", handler.AdjustStock)
	api.GET("/parts/below-reorder", handler.ListBelowReorder)

	token := testutil.DefaultTestToken()
	part := testutil.SeedPart(t, db, "p-001", "224-3441", "Piston Kit")
	db.Model(&entity.Part{}).Where("id = ?", part.ID).
		Update("reorder_level", decimal.NewFromInt(5))

	w := testutil.DoRequest(router, "POST", "/api/v1/parts/"+part.ID+"/adjust",
		map[string]interface{}{"delta": "3"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Driving stock negative is rejected
	w = testutil.DoRequest(router, "POST", "/api/v1/parts/"+part.ID+"/adjust",
		map[string]interface{}{"delta": "-10"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative result, got %d: %s", w.Code, w.Body.String())
	}

	// 3 on hand, reorder level 5: shows in the low-stock list
	w = testutil.DoRequest(router, "GET", "/api/v1/parts/below-reorder", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	low := testutil.ParseResponse(w)["data"].([]interface{})
	if len(low) != 1 {
		t.Errorf("Expected 1 part below reorder, got %d", len(low))
	}
}

func TestListEnginesByCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()
	repos := repository.NewRepositories(db)
	handler := NewPartHandler(service.NewInventoryService(repos.Part, repos.Engine))

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/engines", handler.ListEngines)
	api.POST("/engines", handler.CreateEngine)

	token := testutil.DefaultTestToken()
	customer := testutil.SeedCustomer(t, db, "c-001", "Ozark Trucking", "417-555-0142")

	w := testutil.DoRequest(router, "POST", "/api/v1/engines",
		map[string]interface{}{"customer_id": customer.ID, "make": "Cummins", "model": "ISX15", "serial_number": "79012345"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Listing requires a customer filter
	w = testutil.DoRequest(router, "GET", "/api/v1/engines", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without customer_id, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/engines?customer_id="+customer.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	engines := testutil.ParseResponse(w)["data"].([]interface{})
	if len(engines) != 1 {
		t.Errorf("Expected 1 engine for customer, got %d", len(engines))
	}
}
