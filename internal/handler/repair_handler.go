package handler

import (
	"net/http"
	"strconv"

	"repairshop/internal/config"
	"repairshop/internal/domain/model"
	"repairshop/internal/middleware"
	"repairshop/internal/repository"
	"repairshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /repairs 修理ジョブと使用部品
type RepairHandler struct {
	uc *usecase.RepairUsecase
}

func NewRepairHandler(uc *usecase.RepairUsecase) *RepairHandler {
	return &RepairHandler{uc: uc}
}

func (h *RepairHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/repairs")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PATCH("/:id/status", h.updateStatus)
	g.POST("/:id/parts", h.addPart)
	g.DELETE("/:id/parts/:part_id", h.removePart)

	admin := g.Group("")
	admin.Use(middleware.AdminRoleGuard())
	admin.DELETE("/:id", h.delete)
}

type RepairCreateRequest struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	DeviceName string `json:"device_name" validate:"required"`
	Issue      string `json:"issue"`
}

func (h *RepairHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RepairCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateRepairInput{
		CustomerID: req.CustomerID,
		DeviceName: req.DeviceName,
		Issue:      req.Issue,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *RepairHandler) list(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	q := repository.RepairListQuery{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("customer_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
		}
		q.CustomerID = &x
	}

	out, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RepairHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type RepairStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *RepairHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req RepairStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role := model.Role(getRoleFromContext(c))
	if err := h.uc.UpdateStatus(c.Request().Context(), userID, role, id, model.RepairStatus(req.Status)); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type AddPartRequest struct {
	PartID      int64  `json:"part_id" validate:"required,gt=0"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	PricingMode string `json:"pricing_mode" validate:"required,oneof=repair seal"`
}

func (h *RepairHandler) addPart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req AddPartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.uc.AddPart(c.Request().Context(), userID, id, usecase.AddPartInput{
		PartID:      req.PartID,
		Quantity:    req.Quantity,
		PricingMode: model.PricingMode(req.PricingMode),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *RepairHandler) removePart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	partID, err := parseIDParam(c, "part_id")
	if err != nil {
		return err
	}

	if err := h.uc.RemovePart(c.Request().Context(), userID, id, partID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RepairHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
