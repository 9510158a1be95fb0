package repository

import (
	"product-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *model.Product) error
	FindAll(page Page) ([]model.Product, error)
	List() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	LockByID(id uuid.UUID) (*model.Product, error)
	UpdateStock(id uuid.UUID, remaining int, updatedBy string) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	CountLowStock(threshold int) (int64, error)
	Valuation() (float64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(page Page) ([]model.Product, error) {
	var products []model.Product
	err := page.apply(r.db.Order("created_at ASC")).Find(&products).Error
	return products, err
}

func (r *productRepo) List() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// LockByID reads a product with a row lock, meant to run inside a transaction
func (r *productRepo) LockByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) UpdateStock(id uuid.UUID, remaining int, updatedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"remaining_quantity": remaining,
			"updated_by":         updatedBy,
		}).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("remaining_quantity <= ?", threshold).Count(&count).Error
	return count, err
}

// Valuation is the purchase value of the stock still on hand
func (r *productRepo) Valuation() (float64, error) {
	var total float64
	err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(remaining_quantity * purchase_price), 0)").
		Scan(&total).Error
	return total, err
}
