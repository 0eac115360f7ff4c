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

// /bills 請求書の作成・照会・支払い状態
type BillHandler struct {
	uc *usecase.BillUsecase
}

func NewBillHandler(uc *usecase.BillUsecase) *BillHandler {
	return &BillHandler{uc: uc}
}

func (h *BillHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/bills")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/repair", h.generateFromRepair)
	g.POST("/accessory", h.generateFromAccessories)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PATCH("/:id/payment", h.updatePayment)

	admin := g.Group("")
	admin.Use(middleware.AdminRoleGuard())
	admin.DELETE("/:id", h.delete)
}

type RepairBillRequest struct {
	RepairJobID int64            `json:"repair_job_id" validate:"required,gt=0"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

func (h *BillHandler) generateFromRepair(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RepairBillRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.uc.GenerateFromRepair(c.Request().Context(), userID, usecase.GenerateRepairBillInput{
		RepairJobID: req.RepairJobID,
		TaxRate:     req.TaxRate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

type AccessoryBillLineRequest struct {
	AccessoryID int64 `json:"accessory_id" validate:"required,gt=0"`
	Quantity    int64 `json:"quantity" validate:"required,gt=0"`
}

type AccessoryBillRequest struct {
	CustomerID *int64                     `json:"customer_id"`
	Lines      []AccessoryBillLineRequest `json:"lines" validate:"required,min=1,dive"`
	TaxRate    *decimal.Decimal           `json:"tax_rate"`
}

func (h *BillHandler) generateFromAccessories(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AccessoryBillRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lines := make([]usecase.AccessoryBillLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, usecase.AccessoryBillLine{
			AccessoryID: l.AccessoryID,
			Quantity:    l.Quantity,
		})
	}

	out, err := h.uc.GenerateFromAccessoryCart(c.Request().Context(), userID, usecase.GenerateAccessoryBillInput{
		CustomerID: req.CustomerID,
		Lines:      lines,
		TaxRate:    req.TaxRate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *BillHandler) list(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	q := repository.BillListQuery{
		Page:          page,
		Limit:         limit,
		PaymentStatus: c.QueryParam("payment_status"),
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

func (h *BillHandler) detail(c echo.Context) error {
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

type PaymentUpdateRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
	PaymentMethod string `json:"payment_method"`
}

func (h *BillHandler) updatePayment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req PaymentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.UpdatePaymentStatus(c.Request().Context(), id, model.PaymentStatus(req.PaymentStatus), req.PaymentMethod); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BillHandler) delete(c echo.Context) error {
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
