package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func authApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", JwtMiddleware, func(ctx *fiber.Ctx) error {
		caller, _ := CallerFromCtx(ctx)
		return ctx.JSON(fiber.Map{"id": caller.Id, "role": caller.Role})
	})
	return app
}

func signedToken(t *testing.T, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    string(entity.RoleUser),
	})
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestJwtMiddlewareAcceptsHMAC(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	app := authApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.SigningMethodHS256, []byte("middleware-secret")))

	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusOK)
	}
}

func TestJwtMiddlewareRejectsNoneAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	app := authApp()

	// A token claiming alg "none" carries a valid shape but no signature;
	// the HMAC pin must refuse it regardless of the configured secret.
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType))

	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestJwtMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	app := authApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.SigningMethodHS256, []byte("some-other-secret")))

	res, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want %d", res.StatusCode, fiber.StatusUnauthorized)
	}
}
