package leads

import (
	"errors"
	"net/http"
	"strconv"

	"lead-manager/internal/api"
	"lead-manager/internal/database"
	"lead-manager/internal/middleware"
	"lead-manager/internal/model"
	"lead-manager/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	createLead          = store.CreateLead
	listLeadsByOwner    = store.ListLeadsByOwner
	getLeadByIDAndOwner = store.GetLeadByIDAndOwner
	updateLead          = store.UpdateLead
	deleteLead          = store.DeleteLead
)

// owner 一律取自 RequireAuth 解析的使用者，不信任請求內容
func leadResponse(l *model.Lead) api.LeadResponse {
	return api.LeadResponse{
		ID:              l.ID,
		OwnerID:         l.OwnerID,
		FirstName:       l.FirstName,
		LastName:        l.LastName,
		Email:           l.Email,
		Company:         l.Company,
		Note:            l.Note,
		DateCreated:     l.DateCreated,
		DateLastUpdated: l.DateLastUpdated,
	}
}

// @Summary     Create a lead
// @Description 為當前使用者建立一筆 lead，owner 與時間戳由伺服端決定
// @Tags        leads
// @Accept      json
// @Produce     json
// @Param       request body api.LeadRequest true "lead 內容"
// @Success     200 {object} api.LeadResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /leads [post]
func CreateLeadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LeadRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		lead, err := createLead(c.Request().Context(), db, &model.Lead{
			OwnerID:   user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Company:   req.Company,
			Note:      req.Note,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, leadResponse(lead))
	}
}

// @Summary     List my leads
// @Description 列出當前使用者的全部 leads，依 id 升冪排序
// @Tags        leads
// @Produce     json
// @Success     200 {array} api.LeadResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /leads [get]
func ListLeadsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		leads, err := listLeadsByOwner(c.Request().Context(), db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.LeadResponse, 0, len(leads))
		for i := range leads {
			resp = append(resp, leadResponse(&leads[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a lead
// @Description 取得當前使用者的單筆 lead，他人的 lead 與不存在皆回 404
// @Tags        leads
// @Produce     json
// @Param       lead_id path int true "lead ID"
// @Success     200 {object} api.LeadResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /leads/{lead_id} [get]
func GetLeadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("lead_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid lead ID"})
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		lead, err := getLeadByIDAndOwner(c.Request().Context(), db, id, user.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "lead not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, leadResponse(lead))
	}
}

// @Summary     Update a lead
// @Description 整批覆寫五個內容欄位並刷新 date_last_updated，不支援部分更新
// @Tags        leads
// @Accept      json
// @Produce     json
// @Param       lead_id path int true "lead ID"
// @Param       request body api.LeadRequest true "lead 內容"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /leads/{lead_id} [put]
func UpdateLeadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("lead_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid lead ID"})
		}

		var req api.LeadRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		if err := updateLead(c.Request().Context(), db, &model.Lead{
			ID:        id,
			OwnerID:   user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Company:   req.Company,
			Note:      req.Note,
		}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "lead not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Success: updated"})
	}
}

// @Summary     Delete a lead
// @Description 永久刪除當前使用者的單筆 lead，重複刪除回 404
// @Tags        leads
// @Param       lead_id path int true "lead ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /leads/{lead_id} [delete]
func DeleteLeadHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("lead_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid lead ID"})
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		if err := deleteLead(c.Request().Context(), db, id, user.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "lead not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.NoContent(http.StatusNoContent)
	}
}
