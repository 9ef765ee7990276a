package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"

	"github.com/urbanassist/urban-assist/redis"
	"github.com/urbanassist/urban-assist/utils"
)

// Protected validates the bearer token, rejects blacklisted (logged-out)
// tokens and binds userID and role into the request locals.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   utils.JWTSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			if _, refresh := claims["refresh"]; refresh {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Refresh token cannot be used for authorization",
				})
			}

			if redis.Client != nil {
				raw := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
				if revoked, err := redis.IsBlacklisted(raw); err != nil {
					log.Error().Err(err).Msg("token blacklist lookup failed")
				} else if revoked {
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"error": "Token has been revoked",
					})
				}
			}

			userID, err := utils.UserIDFromClaims(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}

			role, _ := claims["role"].(string)

			c.Locals("userID", userID)
			c.Locals("role", role)

			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
