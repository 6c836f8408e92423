// File: internal/handler/auth/token.go
package auth

import (
	"net/http"
	"strings"

	"lead-manager/internal/api"
	"lead-manager/internal/database"
	"lead-manager/internal/service"
	"lead-manager/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
)

// TokenHandler 使用 Email/Password 驗證並回傳 JWT
// Email 不存在與密碼錯誤回應一致，避免洩漏帳號是否存在
// @Summary     Obtain access token
// @Description 使用 username (Email) 與 password 進行驗證，回傳存取令牌
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /token [post]
func TokenHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.TokenRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Username))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := issueAccessToken(*user, service.AccessTokenTTL())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "Bearer"})
	}
}
