package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

type CustomerService struct {
	repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

type CustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Notes    string `json:"notes"`
}

func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Company:  req.Company,
		Phone:    req.Phone,
		AltPhone: req.AltPhone,
		Email:    req.Email,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Zip:      req.Zip,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int, search string) ([]entity.Customer, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, search)
}

func (s *CustomerService) Update(ctx context.Context, id string, req *CustomerRequest) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = req.Name
	customer.Company = req.Company
	customer.Phone = req.Phone
	customer.AltPhone = req.AltPhone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.City = req.City
	customer.State = req.State
	customer.Zip = req.Zip
	customer.Notes = req.Notes
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer. The repository blocks the deletion while job
// tickets still reference the customer.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
