package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stephenrocksolid/shopmgr/internal/config"
	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

// PurchasingService drives the purchase-order lifecycle and the receiving
// ledger. Quantity bookkeeping lives in the repository transaction; this
// layer validates input, snapshots related records, and raises notifications.
type PurchasingService struct {
	poRepo       *repository.PORepository
	vendorRepo   *repository.VendorRepository
	partRepo     *repository.PartRepository
	customerRepo *repository.CustomerRepository
	notifier     *NotificationService
	shop         config.ShopConfig
}

func NewPurchasingService(
	poRepo *repository.PORepository,
	vendorRepo *repository.VendorRepository,
	partRepo *repository.PartRepository,
	customerRepo *repository.CustomerRepository,
	notifier *NotificationService,
	shop config.ShopConfig,
) *PurchasingService {
	return &PurchasingService{
		poRepo:       poRepo,
		vendorRepo:   vendorRepo,
		partRepo:     partRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		shop:         shop,
	}
}

// CreatePORequest carries the fields for a new draft order.
type CreatePORequest struct {
	PONumber  string  `json:"po_number"`
	VendorID  *string `json:"vendor_id"`
	OrderDate string  `json:"order_date"` // YYYY-MM-DD, defaults to today
	Urgent    bool    `json:"urgent"`
	DropShip  bool    `json:"drop_ship"`
	Notes     string  `json:"notes"`

	Tax      *decimal.Decimal `json:"tax"`
	Shipping *decimal.Decimal `json:"shipping"`
	Discount *decimal.Decimal `json:"discount"`
}

// CreatePO opens a draft order. The vendor name and the shop's ship-to and
// bill-to blocks are copied onto the order once, at creation; later edits to
// the vendor or shop profile are not retroactive.
func (s *PurchasingService) CreatePO(ctx context.Context, userID string, req *CreatePORequest) (*entity.PurchaseOrder, error) {
	number := req.PONumber
	if number == "" {
		n, err := s.poRepo.GenerateNumber(ctx)
		if err != nil {
			return nil, err
		}
		number = n
	} else {
		exists, err := s.poRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &entity.ValidationError{Field: "po_number", Message: "already in use"}
		}
	}

	orderDate := time.Now()
	if req.OrderDate != "" {
		t, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			return nil, &entity.ValidationError{Field: "order_date", Message: "expected YYYY-MM-DD"}
		}
		orderDate = t
	}

	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		PONumber:    number,
		Status:      entity.POStatusDraft,
		OrderDate:   orderDate,
		Urgent:      req.Urgent,
		DropShip:    req.DropShip,
		Notes:       req.Notes,
		RequestedBy: userID,

		ShipToName:    s.shop.Name,
		ShipToAddress: s.shop.Address,
		ShipToCity:    s.shop.City,
		ShipToState:   s.shop.State,
		ShipToZip:     s.shop.Zip,
		ShipToPhone:   s.shop.Phone,

		BillToName:    s.shop.Name,
		BillToAddress: s.shop.Address,
		BillToCity:    s.shop.City,
		BillToState:   s.shop.State,
		BillToZip:     s.shop.Zip,
	}
	if req.Tax != nil {
		po.Tax = *req.Tax
	}
	if req.Shipping != nil {
		po.Shipping = *req.Shipping
	}
	if req.Discount != nil {
		po.Discount = *req.Discount
	}
	po.Total = po.Tax.Add(po.Shipping).Sub(po.Discount)

	if req.VendorID != nil && *req.VendorID != "" {
		vendor, err := s.vendorRepo.FindByID(ctx, *req.VendorID)
		if err != nil {
			return nil, &entity.ValidationError{Field: "vendor_id", Message: "vendor not found"}
		}
		po.VendorID = &vendor.ID
		po.VendorName = vendor.Name
	}

	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *PurchasingService) GetPO(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.poRepo.FindByID(ctx, id)
}

func (s *PurchasingService) ListPOs(ctx context.Context, params repository.POListParams) ([]entity.PurchaseOrder, int64, error) {
	return s.poRepo.FindAll(ctx, params)
}

func (s *PurchasingService) DeletePO(ctx context.Context, id string) error {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if po.Status != entity.POStatusDraft {
		return &entity.ValidationError{Field: "status", Message: "only draft orders can be deleted"}
	}
	return s.poRepo.Delete(ctx, id)
}

// SetShipToFromCustomer copies a customer's address onto the order's ship-to
// snapshot, for drop-ship orders. One-time copy: later customer edits do not
// flow back.
func (s *PurchasingService) SetShipToFromCustomer(ctx context.Context, poID, customerID string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.Terminal() {
		return nil, &entity.ValidationError{Field: "status", Message: "order is closed or cancelled"}
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "customer_id", Message: "customer not found"}
	}

	po.DropShip = true
	po.ShipToName = customer.Name
	po.ShipToAddress = customer.Address
	po.ShipToCity = customer.City
	po.ShipToState = customer.State
	po.ShipToZip = customer.Zip
	po.ShipToPhone = customer.Phone

	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// AddItemRequest carries one line for a purchase order. Either part_id or a
// custom description identifies what is ordered.
type AddItemRequest struct {
	PartID      *string         `json:"part_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Notes       string          `json:"notes"`
}

// AddItem appends a line item, snapshotting part identity at add time.
func (s *PurchasingService) AddItem(ctx context.Context, poID string, req *AddItemRequest) (*entity.Item, error) {
	po, err := s.poRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.Terminal() {
		return nil, &entity.ValidationError{Field: "status", Message: "order is closed or cancelled"}
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, &entity.ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}
	if req.PartID == nil && req.Description == "" {
		return nil, &entity.ValidationError{Field: "description", Message: "part or description is required"}
	}

	item := &entity.Item{
		ID:              uuid.New().String(),
		POID:            po.ID,
		Description:     req.Description,
		QuantityOrdered: req.Quantity,
		UnitPrice:       req.UnitPrice,
		Amount:          req.Quantity.Mul(req.UnitPrice).Round(2),
		Status:          entity.ItemStatusOrdered,
		SortOrder:       len(po.Items) + 1,
		Notes:           req.Notes,
	}

	if req.PartID != nil && *req.PartID != "" {
		part, err := s.partRepo.FindByID(ctx, *req.PartID)
		if err != nil {
			return nil, &entity.ValidationError{Field: "part_id", Message: "part not found"}
		}
		item.PartID = &part.ID
		item.PartNumber = part.PartNumber
		item.PartName = part.Name
		item.Manufacturer = part.Manufacturer
		if req.UnitPrice.IsZero() {
			item.UnitPrice = part.UnitCost
			item.Amount = req.Quantity.Mul(part.UnitCost).Round(2)
		}
	}

	if err := s.poRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemRequest edits a draft line item. Nil fields are left untouched.
type UpdateItemRequest struct {
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Notes       *string          `json:"notes"`
}

// UpdateItem edits a line item while its order is still a draft. After
// submission the line quantities belong to the receiving flow.
func (s *PurchasingService) UpdateItem(ctx context.Context, itemID string, req *UpdateItemRequest) (*entity.Item, error) {
	item, err := s.poRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	po, err := s.poRepo.FindByID(ctx, item.POID)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.POStatusDraft {
		return nil, &entity.ValidationError{Field: "status", Message: "only draft order items can be edited"}
	}
	if req.Quantity != nil {
		if req.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, &entity.ValidationError{Field: "quantity", Message: "must be greater than zero"}
		}
		item.QuantityOrdered = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	item.Amount = item.QuantityOrdered.Mul(item.UnitPrice).Round(2)
	if err := s.poRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SubmitPO moves a draft order to submitted and stamps the submitted date.
func (s *PurchasingService) SubmitPO(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.POStatusDraft {
		return nil, &entity.ValidationError{Field: "status", Message: "only draft orders can be submitted"}
	}
	now := time.Now()
	po.Status = entity.POStatusSubmitted
	po.SubmittedDate = &now
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// ClosePO closes an order that has finished receiving, fully or partially.
func (s *PurchasingService) ClosePO(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.POStatusReceived && po.Status != entity.POStatusPartial {
		return nil, &entity.ValidationError{Field: "status", Message: "only received or partially received orders can be closed"}
	}
	now := time.Now()
	po.Status = entity.POStatusClosed
	po.ClosedDate = &now
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// CancelPO cancels an order from any state short of closed. No quantity
// reconciliation is required.
func (s *PurchasingService) CancelPO(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po.Status == entity.POStatusClosed {
		return nil, &entity.ValidationError{Field: "status", Message: "closed orders cannot be cancelled"}
	}
	po.Status = entity.POStatusCancelled
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// ReceiveRequest carries one receiving event against a line item.
type ReceiveRequest struct {
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Condition    string          `json:"condition"`
	ReceivedDate string          `json:"received_date"` // YYYY-MM-DD, defaults to now
	Notes        string          `json:"notes"`
}

// ReceiveItem records a receiving event. The ledger append, quantity update,
// stock bump, and status derivation all commit atomically in the repository;
// notifications fire only after the transaction sticks.
func (s *PurchasingService) ReceiveItem(ctx context.Context, itemID, userID string, req *ReceiveRequest) (*entity.Item, error) {
	rec := &entity.Receiving{
		Quantity:   req.Quantity,
		Condition:  req.Condition,
		ReceivedBy: userID,
		Notes:      req.Notes,
	}
	if req.ReceivedDate != "" {
		t, err := time.Parse("2006-01-02", req.ReceivedDate)
		if err != nil {
			return nil, &entity.ValidationError{Field: "received_date", Message: "expected YYYY-MM-DD"}
		}
		rec.ReceivedDate = t
	}

	item, err := s.poRepo.Receive(ctx, itemID, rec)
	if err != nil {
		return nil, err
	}

	s.afterReceive(ctx, item)
	return item, nil
}

// afterReceive raises the post-commit notifications: fully received orders
// and parts that fell to their reorder level.
func (s *PurchasingService) afterReceive(ctx context.Context, item *entity.Item) {
	if s.notifier == nil {
		return
	}
	po, err := s.poRepo.FindByID(ctx, item.POID)
	if err != nil {
		return
	}
	if po.Status == entity.POStatusReceived {
		s.notifier.Notify(ctx, po.RequestedBy, entity.NotifyPOReceived,
			"Purchase order fully received",
			"All items on "+po.PONumber+" have been received.",
			"purchase_order", po.ID)
	}
	if item.PartID != nil {
		part, err := s.partRepo.FindByID(ctx, *item.PartID)
		if err == nil && part.BelowReorder() {
			s.notifier.Notify(ctx, po.RequestedBy, entity.NotifyPartLowStock,
				"Part at reorder level",
				part.PartNumber+" is at or below its reorder level.",
				"part", part.ID)
		}
	}
}

func (s *PurchasingService) CancelRemaining(ctx context.Context, itemID string, qty decimal.Decimal) (*entity.Item, error) {
	return s.poRepo.CancelRemaining(ctx, itemID, qty)
}

func (s *PurchasingService) MarkBackordered(ctx context.Context, itemID string, qty decimal.Decimal) (*entity.Item, error) {
	return s.poRepo.MarkBackordered(ctx, itemID, qty)
}

func (s *PurchasingService) ListReceivings(ctx context.Context, itemID string) ([]entity.Receiving, error) {
	if _, err := s.poRepo.FindItemByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.poRepo.ListReceivings(ctx, itemID)
}

// UpdateReceivingRequest is the administrative correction payload. Nil fields
// are left untouched.
type UpdateReceivingRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	Condition *string          `json:"condition"`
	Notes     *string          `json:"notes"`
}

func (s *PurchasingService) UpdateReceiving(ctx context.Context, recID string, req *UpdateReceivingRequest) (*entity.Receiving, error) {
	return s.poRepo.UpdateReceiving(ctx, recID, req.Quantity, req.Condition, req.Notes)
}

func (s *PurchasingService) DeleteReceiving(ctx context.Context, recID string) error {
	return s.poRepo.DeleteReceiving(ctx, recID)
}
