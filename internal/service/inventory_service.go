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

type InventoryService interface {
	CreateProduct(req *CreateProductRequest, actor string) (*model.Product, error)
	GetProducts(page repository.Page) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor string) error
}

type inventoryService struct {
	productRepo repository.ProductRepository
	notifier    Notifier
	log         *zap.Logger
	now         func() time.Time
}

func NewInventoryService(pRepo repository.ProductRepository, notifier Notifier, log *zap.Logger) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		notifier:    notifierOrNop(notifier),
		log:         log.Named("inventory"),
		now:         time.Now,
	}
}

func (s *inventoryService) CreateProduct(req *CreateProductRequest, actor string) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	purchaseDate, err := parseDate(req.PurchaseDate, now)
	if err != nil {
		return nil, err
	}
	registrationDate, err := parseDate(req.RegistrationDate, now)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:              req.Name,
		PurchasePrice:     *req.PurchasePrice,
		ShippingFee:       req.ShippingFee,
		PurchaseDate:      &purchaseDate,
		RegistrationDate:  &registrationDate,
		StartQuantity:     req.StartQuantity,
		RemainingQuantity: req.StartQuantity,
		SupplierID:        req.SupplierID,
	}
	product.CreatedBy = actor
	product.UpdatedBy = actor

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.Stringer("product_id", product.ID), zap.String("actor", actor))
	s.notifier.Publish(EventProductCreated, product.ToResponse())
	return product, nil
}

func (s *inventoryService) GetProducts(page repository.Page) ([]model.Product, error) {
	return s.productRepo.FindAll(repository.NewPage(page.Skip, page.Limit))
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// DeleteProduct removes the product. Orders that reference it keep the
// reference and cost it at zero from then on.
func (s *inventoryService) DeleteProduct(id uuid.UUID, actor string) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.log.Info("product deleted", zap.Stringer("product_id", id), zap.String("actor", actor))
	s.notifier.Publish(EventProductDeleted, map[string]interface{}{"product_id": id})
	return nil
}
