package handler

import (
	"product-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest accepts both form-encoded and JSON credentials
type TokenRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Token exchanges credentials for a bearer token
// POST /api/v1/token
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}
