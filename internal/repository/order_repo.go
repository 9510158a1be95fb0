package repository

import (
	"time"

	"product-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(order *model.Order) error
	FindAll(filter OrderFilter) ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByEventID(eventID uuid.UUID) ([]model.Order, error)
	CountByEventID(eventID uuid.UUID) (int64, error)
	UpdateFinancials(order *model.Order) error
	UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
}

// OrderFilter narrows an order listing. Zero values mean "no filter";
// a zero Page.Limit returns every matching order.
type OrderFilter struct {
	Page
	EventID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepo{tx}
}

// Create inserts the order together with its line items
func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) FindAll(filter OrderFilter) ([]model.Order, error) {
	var orders []model.Order

	query := r.db.Preload("Items").Order("created_at ASC")
	if filter.EventID != nil {
		query = query.Where("live_selling_event_id = ?", *filter.EventID)
	}
	if filter.From != nil {
		query = query.Where("sold_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sold_date <= ?", *filter.To)
	}

	err := filter.Page.apply(query).Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByEventID(eventID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("live_selling_event_id = ?", eventID).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CountByEventID(eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Where("live_selling_event_id = ?", eventID).Count(&count).Error
	return count, err
}

// UpdateFinancials persists only the derived money fields
func (r *orderRepo) UpdateFinancials(order *model.Order) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"ads_fee":    order.AdsFee,
			"total_cost": order.TotalCost,
			"profit":     order.Profit,
		}).Error
}

func (r *orderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the order and its line items
func (r *orderRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *orderRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Count(&count).Error
	return count, err
}
