package service

import (
	"errors"
	"time"

	"product-tracker/internal/model"
	"product-tracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(req *CreateEventRequest, actor string) (*model.LiveSellingEvent, error)
	GetEvents(page repository.Page) ([]model.LiveSellingEvent, error)
	GetEvent(id uuid.UUID) (*model.LiveSellingEvent, error)
	GetEventOrders(id uuid.UUID) ([]model.Order, error)
	DeleteEvent(id uuid.UUID, actor string) error
}

type eventService struct {
	eventRepo repository.EventRepository
	orderRepo repository.OrderRepository
	notifier  Notifier
	log       *zap.Logger
	now       func() time.Time
}

func NewEventService(eRepo repository.EventRepository, oRepo repository.OrderRepository, notifier Notifier, log *zap.Logger) EventService {
	return &eventService{
		eventRepo: eRepo,
		orderRepo: oRepo,
		notifier:  notifierOrNop(notifier),
		log:       log.Named("events"),
		now:       time.Now,
	}
}

func (s *eventService) CreateEvent(req *CreateEventRequest, actor string) (*model.LiveSellingEvent, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	eventDate, err := parseDate(req.EventDate, s.now())
	if err != nil {
		return nil, err
	}

	event := &model.LiveSellingEvent{
		EventDate: eventDate,
		AdsFee:    *req.AdsFee,
		Notes:     req.Notes,
	}
	event.CreatedBy = actor
	event.UpdatedBy = actor

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}

	s.log.Info("event created", zap.Stringer("event_id", event.ID), zap.Float64("ads_fee", event.AdsFee))
	s.notifier.Publish(EventEventCreated, event.ToResponse())
	return event, nil
}

func (s *eventService) GetEvents(page repository.Page) ([]model.LiveSellingEvent, error) {
	return s.eventRepo.FindAll(repository.NewPage(page.Skip, page.Limit))
}

func (s *eventService) GetEvent(id uuid.UUID) (*model.LiveSellingEvent, error) {
	event, err := s.eventRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// GetEventOrders lists the orders that reference the event
func (s *eventService) GetEventOrders(id uuid.UUID) ([]model.Order, error) {
	if _, err := s.GetEvent(id); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByEventID(id)
}

// DeleteEvent removes the event only. Linked orders keep their reference and
// their last stored figures.
func (s *eventService) DeleteEvent(id uuid.UUID, actor string) error {
	if err := s.eventRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	s.log.Info("event deleted", zap.Stringer("event_id", id), zap.String("actor", actor))
	s.notifier.Publish(EventEventDeleted, map[string]interface{}{"event_id": id})
	return nil
}
