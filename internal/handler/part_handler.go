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
	"github.com/shopspring/decimal"
)

// /parts の在庫管理API。全ルート認証必須、在庫調整と削除は管理者のみ。
type PartHandler struct {
	uc          *usecase.PartUsecase
	inventoryUC *usecase.InventoryUsecase
}

func NewPartHandler(uc *usecase.PartUsecase, inventoryUC *usecase.InventoryUsecase) *PartHandler {
	return &PartHandler{uc: uc, inventoryUC: inventoryUC}
}

func (h *PartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/parts")
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

func (h *PartHandler) list(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	var boxID *int64
	if v := c.QueryParam("box_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid box_id"})
		}
		boxID = &x
	}

	out, err := h.uc.List(c.Request().Context(), repository.PartListQuery{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
		BoxID: boxID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PartHandler) lowStock(c echo.Context) error {
	items, err := h.inventoryUC.LowStockParts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *PartHandler) detail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type PartCreateRequest struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	RepairPrice  decimal.Decimal `json:"repair_price"`
	SealingPrice decimal.Decimal `json:"sealing_price"`
	Quantity     int64           `json:"quantity" validate:"gte=0"`
	MinQuantity  int64           `json:"min_quantity" validate:"gte=0"`
	StorageBoxID *int64          `json:"storage_box_id"`
}

func (h *PartHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PartCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Request().Context(), userID, usecase.CreatePartInput{
		Name:         req.Name,
		Description:  req.Description,
		RepairPrice:  req.RepairPrice,
		SealingPrice: req.SealingPrice,
		Quantity:     req.Quantity,
		MinQuantity:  req.MinQuantity,
		StorageBoxID: req.StorageBoxID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

type PartUpdateRequest struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	RepairPrice  decimal.Decimal `json:"repair_price"`
	SealingPrice decimal.Decimal `json:"sealing_price"`
	MinQuantity  int64           `json:"min_quantity" validate:"gte=0"`
	StorageBoxID *int64          `json:"storage_box_id"`
}

func (h *PartHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req PartUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Update(c.Request().Context(), userID, id, usecase.UpdatePartInput{
		Name:         req.Name,
		Description:  req.Description,
		RepairPrice:  req.RepairPrice,
		SealingPrice: req.SealingPrice,
		MinQuantity:  req.MinQuantity,
		StorageBoxID: req.StorageBoxID,
	}); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PartHandler) delete(c echo.Context) error {
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

type StockAdjustRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=add subtract set"`
	Quantity int64  `json:"quantity" validate:"gte=0"`
	Reason   string `json:"reason" validate:"required"`
}

func (h *PartHandler) adjustStock(c echo.Context) error {
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
		ItemType: model.ItemTypePart,
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
