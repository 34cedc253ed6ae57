package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Part, int64, error) {
	var parts []entity.Part
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Part{})
	if category := filters["category"]; category != "" {
		query = query.Where("category = ?", category)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("part_number LIKE ? OR name LIKE ? OR manufacturer LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("part_number ASC").Offset(offset).Limit(pageSize).Find(&parts).Error
	return parts, total, err
}

func (r *PartRepository) FindByID(ctx context.Context, id string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) FindByNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) Create(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *PartRepository) Update(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// AdjustStock applies a manual on-hand delta and returns the updated part.
func (r *PartRepository) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (*entity.Part, error) {
	var out entity.Part
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var part entity.Part
		if err := lockForUpdate(tx).Where("id = ?", id).First(&part).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		next := part.QuantityOnHand.Add(delta)
		if next.LessThan(decimal.Zero) {
			return &entity.ValidationError{Field: "delta", Message: "would drive on-hand quantity negative"}
		}
		part.QuantityOnHand = next
		if err := tx.Save(&part).Error; err != nil {
			return err
		}
		out = part
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindBelowReorder lists parts at or under their reorder level.
func (r *PartRepository) FindBelowReorder(ctx context.Context) ([]entity.Part, error) {
	var parts []entity.Part
	err := r.db.WithContext(ctx).
		Where("reorder_level > 0 AND quantity_on_hand <= reorder_level").
		Order("part_number ASC").
		Find(&parts).Error
	return parts, err
}

// Delete removes a part unless historical PO line items reference it.
func (r *PartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entity.Item{}).Where("part_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &entity.ProtectedReferenceError{Entity: "part", ID: id, Refs: refs}
		}
		return tx.Where("id = ?", id).Delete(&entity.Part{}).Error
	})
}

// EngineRepository owns customer engines.
type EngineRepository struct {
	db *gorm.DB
}

func NewEngineRepository(db *gorm.DB) *EngineRepository {
	return &EngineRepository{db: db}
}

func (r *EngineRepository) FindByID(ctx context.Context, id string) (*entity.Engine, error) {
	var engine entity.Engine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&engine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &engine, nil
}

func (r *EngineRepository) FindByCustomer(ctx context.Context, customerID string) ([]entity.Engine, error) {
	var engines []entity.Engine
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&engines).Error
	return engines, err
}

func (r *EngineRepository) Create(ctx context.Context, engine *entity.Engine) error {
	return r.db.WithContext(ctx).Create(engine).Error
}

func (r *EngineRepository) Update(ctx context.Context, engine *entity.Engine) error {
	return r.db.WithContext(ctx).Save(engine).Error
}

func (r *EngineRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entity.Job{}).Where("engine_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &entity.ProtectedReferenceError{Entity: "engine", ID: id, Refs: refs}
		}
		return tx.Where("id = ?", id).Delete(&entity.Engine{}).Error
	})
}
