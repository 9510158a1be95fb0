package repository

import (
	"product-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	WithTx(tx *gorm.DB) EventRepository
	Create(event *model.LiveSellingEvent) error
	FindAll(page Page) ([]model.LiveSellingEvent, error)
	List() ([]model.LiveSellingEvent, error)
	FindByID(id uuid.UUID) (*model.LiveSellingEvent, error)
	LockByID(id uuid.UUID) (*model.LiveSellingEvent, error)
	Delete(id uuid.UUID) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db}
}

func (r *eventRepo) WithTx(tx *gorm.DB) EventRepository {
	return &eventRepo{tx}
}

func (r *eventRepo) Create(event *model.LiveSellingEvent) error {
	return r.db.Create(event).Error
}

func (r *eventRepo) FindAll(page Page) ([]model.LiveSellingEvent, error) {
	var events []model.LiveSellingEvent
	err := page.apply(r.db.Order("event_date DESC, created_at ASC")).Find(&events).Error
	return events, err
}

func (r *eventRepo) List() ([]model.LiveSellingEvent, error) {
	var events []model.LiveSellingEvent
	err := r.db.Find(&events).Error
	return events, err
}

func (r *eventRepo) FindByID(id uuid.UUID) (*model.LiveSellingEvent, error) {
	var event model.LiveSellingEvent
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// LockByID serialises reallocations of the same event when run inside a transaction
func (r *eventRepo) LockByID(id uuid.UUID) (*model.LiveSellingEvent, error) {
	var event model.LiveSellingEvent
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&model.LiveSellingEvent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
