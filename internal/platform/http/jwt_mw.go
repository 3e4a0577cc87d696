package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/domain"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error_code": "UNAUTHORIZED",
		"message":    "Se requiere autenticación",
	})
}

// JWTAuth verifies the bearer token and stores the resolved actor id and
// role in the request Locals.
func JWTAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			return unauthorized(c)
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")
		tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !tok.Valid {
			return unauthorized(c)
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}
		sub, _ := claims["sub"].(string)
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return unauthorized(c)
		}
		role, _ := claims["role"].(string)
		c.Locals("user_id", id)
		c.Locals("role", role)
		if email, _ := claims["email"].(string); email != "" {
			c.Locals("email", email)
		}

		return c.Next()
	}
}

// CurrentActor rebuilds the Actor stored by JWTAuth. The role is validated
// against the closed set so a stale or forged token cannot smuggle an
// unknown role into the policy engine.
func CurrentActor(c *fiber.Ctx) (domain.Actor, error) {
	id, ok := c.Locals("user_id").(int64)
	if !ok {
		return domain.Actor{}, fiber.ErrUnauthorized
	}
	roleStr, _ := c.Locals("role").(string)
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{ID: id, Role: role}, nil
}
