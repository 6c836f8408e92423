package users

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"lead-manager/internal/api"
	"lead-manager/internal/database"
	"lead-manager/internal/middleware"
	"lead-manager/internal/model"
	"lead-manager/internal/service"
	"lead-manager/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	getUserByEmail   = store.GetUserByEmail
	createUser       = store.CreateUser
	issueAccessToken = service.IssueAccessToken
)

// uniqueViolation 判斷是否為 Postgres 唯一鍵衝突 (SQLSTATE 23505)
// 先查後插仍可能與並發註冊撞上，衝突時以相同訊息回 400
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// @Summary     Register a new user
// @Description 以 Email 與密碼建立帳號 (Email 會自動轉小寫)，成功直接回傳存取令牌
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.CreateUserRequest true "註冊資料"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		if _, err := getUserByEmail(c.Request().Context(), db, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already registered"})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if uniqueViolation(err) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		token, err := issueAccessToken(*user, service.AccessTokenTTL())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "Bearer"})
	}
}

// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMyUserHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		return c.JSON(http.StatusOK, api.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		})
	}
}
