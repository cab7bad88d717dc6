package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"kursusku_backend/internals/configs"
)

// AuthMiddleware memvalidasi bearer token dan menyimpan user_id di locals.
// Autentikasi penuh (login/refresh) hidup di service lain; di sini cukup
// verifikasi tanda tangan + exp lalu ambil klaim "id".
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			cookieToken := c.Cookies("access_token")
			if cookieToken != "" {
				authHeader = "Bearer " + cookieToken
			}
		}
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak ditemukan")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Format token tidak valid")
		}
		tokenString := tokenParts[1]

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Konfigurasi auth tidak lengkap")
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Metode signing tidak didukung")
			}
			return []byte(secretKey), nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid")
		}

		// Validasi exp (toleransi clock skew 30 detik)
		if exp, ok := claims["exp"].(float64); ok {
			expTime := time.Unix(int64(exp), 0)
			if time.Now().After(expTime.Add(30 * time.Second)) {
				return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
			}
		}

		idStr, ok := claims["id"].(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak memiliki ID")
		}
		userID, err := uuid.Parse(idStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "ID token bukan UUID")
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
