package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminOnly must run after the jwt middleware.
func AdminOnly(c *fiber.Ctx) error {
	if !isAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Admin access required"})
	}
	return c.Next()
}

func isAdmin(c *fiber.Ctx) bool {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return false
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, _ := claims["isAdmin"].(bool)
	return admin
}
