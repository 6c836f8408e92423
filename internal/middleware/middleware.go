package middleware

import (
	"errors"
	"net/http"
	"strings"

	"lead-manager/internal/database"
	"lead-manager/internal/model"
	"lead-manager/internal/service"
	"lead-manager/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var (
	verifyAccessToken = service.VerifyAccessToken
	getUserByID       = store.GetUserByID
)

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := verifyAccessToken(parts[1])
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token expired")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer Token 並以 claims 解析出使用者後放入 context
// 令牌有效但使用者已不存在時同樣回 401
func RequireAuth(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c)
			if err != nil {
				return err
			}
			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 解析完成的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}
