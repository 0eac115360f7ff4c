package handler

import (
	"net/http"

	"repairshop/internal/config"
	"repairshop/internal/domain/model"
	"repairshop/internal/middleware"
	"repairshop/internal/repository"
	"repairshop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /accessories の在庫管理API。構成は/partsと同じ。
type AccessoryHandler struct {
	uc          *usecase.AccessoryUsecase
	inventoryUC *usecase.InventoryUsecase
}

func NewAccessoryHandler(uc *usecase.AccessoryUsecase, inventoryUC *usecase.InventoryUsecase) *AccessoryHandler {
	return &AccessoryHandler{uc: uc, inventoryUC: inventoryUC}
}

func (h *AccessoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/accessories")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.GET("/low-stock", h.lowStock)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)

	admin := g.Group("")
	admin.Use(middleware.AdminRoleGuard())
	admin.DELETE("/:id", h.delete)
	admin.POST("/:id/stock", h.adjustStock)
}

func (h *AccessoryHandler) list(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	out, err := h.uc.List(c.Request().Context(), repository.AccessoryListQuery{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AccessoryHandler) lowStock(c echo.Context) error {
	items, err := h.inventoryUC.LowStockAccessories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *AccessoryHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

type AccessoryCreateRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity" validate:"gte=0"`
	MinQuantity int64           `json:"min_quantity" validate:"gte=0"`
}

func (h *AccessoryHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AccessoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateAccessoryInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, a)
}

type AccessoryUpdateRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity int64           `json:"min_quantity" validate:"gte=0"`
}

func (h *AccessoryHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req AccessoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Update(c.Request().Context(), userID, id, usecase.UpdateAccessoryInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MinQuantity: req.MinQuantity,
	}); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AccessoryHandler) delete(c echo.Context) error {
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

func (h *AccessoryHandler) adjustStock(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req StockAdjustRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.inventoryUC.Adjust(c.Request().Context(), userID, usecase.AdjustStockInput{
		ItemType: model.ItemTypeAccessory,
		ItemID:   id,
		Mode:     model.AdjustMode(req.Mode),
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
