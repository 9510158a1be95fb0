package middleware

import (
	"strings"

	"product-tracker/internal/repository"
	"product-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(userRepo repository.UserRepository, tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The account may have been removed or disabled since the token was issued
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("username", user.Username)

		return c.Next()
	}
}
