package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// WelcomeResponse 公開歡迎訊息回應模型
// swagger:model WelcomeResponse
type WelcomeResponse struct {
	Message string `json:"message" example:"Welcome to the API"`
}

// WelcomeHandler 公開入口訊息
// @Summary     Welcome
// @Description 回傳歡迎訊息，不需認證
// @Tags        health
// @Produce     json
// @Success     200 {object} WelcomeResponse
// @Router      /welcome [get]
func WelcomeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, WelcomeResponse{Message: "Welcome to the API"})
	}
}
