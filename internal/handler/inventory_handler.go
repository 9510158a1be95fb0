package handler

import (
	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(product.ToResponse())
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	skip, limit := pageFromQuery(c)
	products, err := h.service.GetProducts(repository.Page{Skip: skip, Limit: limit})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]model.ProductResponse, len(products))
	for i := range products {
		out[i] = products[i].ToResponse()
	}
	return c.JSON(out)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product.ToResponse())
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "Product deleted successfully"})
}
