package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

type VendorService struct {
	repo *repository.VendorRepository
}

func NewVendorService(repo *repository.VendorRepository) *VendorService {
	return &VendorService{repo: repo}
}

type VendorRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Contact       string `json:"contact"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	AccountNumber string `json:"account_number"`
	Notes         string `json:"notes"`
}

func (s *VendorService) Create(ctx context.Context, req *VendorRequest) (*entity.Vendor, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &entity.ValidationError{Field: "code", Message: "already in use"}
	}

	vendor := &entity.Vendor{
		ID:            uuid.New().String(),
		Code:          req.Code,
		Name:          req.Name,
		Contact:       req.Contact,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		AccountNumber: req.AccountNumber,
		Status:        entity.VendorStatusActive,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) Get(ctx context.Context, id string) (*entity.Vendor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VendorService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Vendor, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *VendorService) Update(ctx context.Context, id string, req *VendorRequest) (*entity.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.Code = req.Code
	vendor.Name = req.Name
	vendor.Contact = req.Contact
	vendor.Phone = req.Phone
	vendor.Email = req.Email
	vendor.Address = req.Address
	vendor.City = req.City
	vendor.State = req.State
	vendor.Zip = req.Zip
	vendor.AccountNumber = req.AccountNumber
	vendor.Notes = req.Notes
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) Deactivate(ctx context.Context, id string) (*entity.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.Status = entity.VendorStatusInactive
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Delete removes a vendor. The repository blocks the deletion while purchase
// orders still reference the vendor.
func (s *VendorService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
