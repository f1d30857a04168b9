package serverutils

import (
	"fmt"
	"os"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtMiddleware extracts the caller identity (id + role) from the bearer
// token. Token issuance lives elsewhere; the chat core trusts this input.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Pin HMAC so a token signed with "none" or an RSA public-key
		// confusion never validates.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	idStr, _ := claims["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid subject"})
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = string(entity.RoleUser)
	}

	ctx.Locals("caller", entity.CallerIdentity{Id: id, Role: entity.Role(role)})
	return ctx.Next()
}

// CallerFromCtx returns the identity stored by JwtMiddleware.
func CallerFromCtx(ctx *fiber.Ctx) (entity.CallerIdentity, bool) {
	caller, ok := ctx.Locals("caller").(entity.CallerIdentity)
	return caller, ok
}

// RequireRole guards a route group to the given roles.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		caller, ok := CallerFromCtx(ctx)
		if !ok {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
		}
		for _, role := range roles {
			if caller.Role == role {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
	}
}
