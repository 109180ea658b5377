package middleware

import (
	"strings"

	"campus-recruit/core/config"
	"campus-recruit/core/controller"
	"campus-recruit/core/errors"
	"campus-recruit/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ContextUserIDKey = "user_id"

type Middleware struct {
	base controller.BaseController
}

func NewMiddleware() *Middleware {
	return &Middleware{base: controller.NewBaseController()}
}

// AuthMiddleware verifies the bearer token issued by the identity service and
// stores the subject user id in the echo context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Invalid Authorization header format")
			}

			cfg, ok := config.GetSafe()
			if !ok {
				return m.base.InternalServerError(errors.ErrInternalServer, "Server configuration error")
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWT.Secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Middleware:Auth:InvalidToken", "error", err)
				return m.base.Unauthorized(errors.ErrUnauthorized, "Invalid or expired token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return m.base.Unauthorized(errors.ErrUnauthorized, "Invalid token claims")
			}

			sub, _ := claims["sub"].(string)
			userID, err := uuid.Parse(sub)
			if err != nil {
				return m.base.Unauthorized(errors.ErrUnauthorized, "Invalid subject claim")
			}

			c.Set(ContextUserIDKey, userID)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by AuthMiddleware.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextUserIDKey).(uuid.UUID)
	return id, ok
}
