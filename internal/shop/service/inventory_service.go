package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

// InventoryService manages the part catalog and customer engines.
type InventoryService struct {
	partRepo   *repository.PartRepository
	engineRepo *repository.EngineRepository
}

func NewInventoryService(partRepo *repository.PartRepository, engineRepo *repository.EngineRepository) *InventoryService {
	return &InventoryService{partRepo: partRepo, engineRepo: engineRepo}
}

type PartRequest struct {
	PartNumber   string           `json:"part_number" binding:"required"`
	Name         string           `json:"name" binding:"required"`
	Manufacturer string           `json:"manufacturer"`
	Category     string           `json:"category"`
	Location     string           `json:"location"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	Notes        string           `json:"notes"`
}

func (s *InventoryService) CreatePart(ctx context.Context, req *PartRequest) (*entity.Part, error) {
	if _, err := s.partRepo.FindByNumber(ctx, req.PartNumber); err == nil {
		return nil, &entity.ValidationError{Field: "part_number", Message: "already in use"}
	}
	part := &entity.Part{
		ID:           uuid.New().String(),
		PartNumber:   req.PartNumber,
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Category:     req.Category,
		Location:     req.Location,
		Notes:        req.Notes,
	}
	if req.UnitCost != nil {
		part.UnitCost = *req.UnitCost
	}
	if req.ReorderLevel != nil {
		part.ReorderLevel = *req.ReorderLevel
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *InventoryService) GetPart(ctx context.Context, id string) (*entity.Part, error) {
	return s.partRepo.FindByID(ctx, id)
}

func (s *InventoryService) ListParts(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Part, int64, error) {
	return s.partRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *InventoryService) UpdatePart(ctx context.Context, id string, req *PartRequest) (*entity.Part, error) {
	part, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	part.PartNumber = req.PartNumber
	part.Name = req.Name
	part.Manufacturer = req.Manufacturer
	part.Category = req.Category
	part.Location = req.Location
	part.Notes = req.Notes
	if req.UnitCost != nil {
		part.UnitCost = *req.UnitCost
	}
	if req.ReorderLevel != nil {
		part.ReorderLevel = *req.ReorderLevel
	}
	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// AdjustStock applies a manual on-hand correction (count fixes, shrinkage).
func (s *InventoryService) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (*entity.Part, error) {
	return s.partRepo.AdjustStock(ctx, id, delta)
}

func (s *InventoryService) ListBelowReorder(ctx context.Context) ([]entity.Part, error) {
	return s.partRepo.FindBelowReorder(ctx)
}

// DeletePart removes a part. Blocked while PO line items reference it.
func (s *InventoryService) DeletePart(ctx context.Context, id string) error {
	return s.partRepo.Delete(ctx, id)
}

type EngineRequest struct {
	CustomerID   *string `json:"customer_id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	SerialNumber string  `json:"serial_number"`
	Cylinders    int     `json:"cylinders"`
	Notes        string  `json:"notes"`
}

func (s *InventoryService) CreateEngine(ctx context.Context, req *EngineRequest) (*entity.Engine, error) {
	engine := &entity.Engine{
		ID:           uuid.New().String(),
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Cylinders:    req.Cylinders,
		Notes:        req.Notes,
	}
	if err := s.engineRepo.Create(ctx, engine); err != nil {
		return nil, err
	}
	return engine, nil
}

func (s *InventoryService) GetEngine(ctx context.Context, id string) (*entity.Engine, error) {
	return s.engineRepo.FindByID(ctx, id)
}

func (s *InventoryService) ListEnginesByCustomer(ctx context.Context, customerID string) ([]entity.Engine, error) {
	return s.engineRepo.FindByCustomer(ctx, customerID)
}

func (s *InventoryService) DeleteEngine(ctx context.Context, id string) error {
	return s.engineRepo.Delete(ctx, id)
}
